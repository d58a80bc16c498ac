// Package shaping filters response fields by the caller's privilege tier.
package shaping

type Group string

const (
	GroupPublic Group = "public"
	GroupUser   Group = "user"
	GroupAdmin  Group = "admin"
)

type Kind string

const (
	KindUser          Kind = "user"
	KindRole          Kind = "role"
	KindPermission    Kind = "permission"
	KindFile          Kind = "file"
	KindSampleProduct Kind = "sample_product"
	KindPool          Kind = "pool"
	KindDonation      Kind = "donation"
)

// Field lists the groups that may see a field. Nested names the kind used
// to filter the field's value when it is an entity or a list of them.
type Field struct {
	Groups []Group
	Nested Kind
}

var (
	adminOnly     = []Group{GroupAdmin}
	adminUser     = []Group{GroupAdmin, GroupUser}
	everyone      = []Group{GroupPublic, GroupAdmin, GroupUser}
	visibilityMap = map[Kind]map[string]Field{
		KindUser: {
			"id":        {Groups: adminUser},
			"name":      {Groups: adminUser},
			"email":     {Groups: adminUser},
			"isActive":  {Groups: adminOnly},
			"createdAt": {Groups: adminOnly},
			"updatedAt": {Groups: adminOnly},
			"roles":     {Groups: adminUser, Nested: KindRole},
		},
		KindRole: {
			"id":          {Groups: adminUser},
			"name":        {Groups: adminUser},
			"description": {Groups: adminUser},
			"isActive":    {Groups: adminOnly},
			"createdAt":   {Groups: adminOnly},
			"updatedAt":   {Groups: adminOnly},
			"deletedAt":   {Groups: adminOnly},
			"users":       {Groups: adminOnly, Nested: KindUser},
			"permissions": {Groups: adminUser, Nested: KindPermission},
		},
		KindPermission: {
			"id":          {Groups: adminUser},
			"name":        {Groups: adminUser},
			"resource":    {Groups: adminUser},
			"action":      {Groups: adminUser},
			"description": {Groups: adminUser},
			"isActive":    {Groups: adminOnly},
			"createdAt":   {Groups: adminOnly},
			"updatedAt":   {Groups: adminOnly},
			"deletedAt":   {Groups: adminOnly},
		},
		KindFile: {
			"id":         {Groups: adminUser},
			"fileName":   {Groups: adminUser},
			"fileType":   {Groups: adminUser},
			"fileSize":   {Groups: adminUser},
			"uploadDate": {Groups: adminUser},
			"moduleName": {Groups: adminUser},
			"uploaderId": {Groups: adminOnly},
			"filePath":   {Groups: adminOnly},
			"isDeleted":  {Groups: adminOnly},
			"updatedAt":  {Groups: adminOnly},
		},
		KindSampleProduct: {
			"id":              {Groups: adminUser},
			"name":            {Groups: adminUser},
			"description":     {Groups: adminUser},
			"descriptionHtml": {Groups: adminUser},
			"code":            {Groups: adminUser},
			"isActive":        {Groups: adminOnly},
			"createdAt":       {Groups: adminOnly},
			"updatedAt":       {Groups: adminOnly},
			"deletedAt":       {Groups: adminOnly},
		},
		KindPool: {
			"id":                {Groups: everyone},
			"name":              {Groups: everyone},
			"sampleSource":      {Groups: everyone},
			"batchNumber":       {Groups: everyone},
			"description":       {Groups: everyone},
			"descriptionHtml":   {Groups: everyone},
			"poolPrice":         {Groups: everyone},
			"amountReceived":    {Groups: everyone},
			"status":            {Groups: everyone},
			"totalContributors": {Groups: everyone},
			"category":          {Groups: everyone, Nested: KindSampleProduct},
			"sampleImage":       {Groups: everyone, Nested: KindFile},
			"isActive":          {Groups: adminOnly},
			"isApproved":        {Groups: adminOnly},
			"userId":            {Groups: adminOnly},
			"user":              {Groups: adminOnly, Nested: KindUser},
			"createdAt":         {Groups: adminOnly},
			"updatedAt":         {Groups: adminOnly},
			"deletedAt":         {Groups: adminOnly},
		},
		KindDonation: {
			"id":                  {Groups: everyone},
			"amount":              {Groups: everyone},
			"currency":            {Groups: everyone},
			"message":             {Groups: everyone},
			"status":              {Groups: everyone},
			"poolId":              {Groups: everyone},
			"createdAt":           {Groups: everyone},
			"userId":              {Groups: adminUser},
			"anonymousDonorName":  {Groups: adminUser},
			"anonymousDonorEmail": {Groups: adminOnly},
			"anonymousDonorPhone": {Groups: adminOnly},
			"providerOrderId":     {Groups: adminOnly},
			"providerPaymentId":   {Groups: adminOnly},
			"providerSignature":   {Groups: adminOnly},
			"updatedAt":           {Groups: adminOnly},
		},
	}
)
