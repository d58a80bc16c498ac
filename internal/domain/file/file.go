package file

import (
	"strings"
	"time"

	"github.com/labpool/labpool/internal/shared/errors"
)

// ModuleName groups uploads by the feature that owns them. It is also the
// sub-directory the bytes are written to.
type ModuleName string

const (
	ModuleUser          ModuleName = "user"
	ModuleRole          ModuleName = "role"
	ModulePermission    ModuleName = "permission"
	ModuleFile          ModuleName = "file"
	ModuleSampleProduct ModuleName = "sample-product"
	ModulePool          ModuleName = "pool"
	ModuleGeneral       ModuleName = "general"
)

// ParseModuleName maps an empty value to ModuleGeneral.
func ParseModuleName(s string) (ModuleName, error) {
	switch m := ModuleName(strings.TrimSpace(s)); m {
	case "":
		return ModuleGeneral, nil
	case ModuleUser, ModuleRole, ModulePermission, ModuleFile, ModuleSampleProduct, ModulePool, ModuleGeneral:
		return m, nil
	default:
		return "", errors.NewValidationError("invalid module name", s)
	}
}

// File is the metadata row for an uploaded object. Deletion is a flag
// until a hard delete removes the row and the bytes.
type File struct {
	id         string
	fileName   string
	fileType   string
	fileSize   int64
	filePath   string
	moduleName ModuleName
	uploaderID string
	isDeleted  bool
	uploadDate time.Time
	updatedAt  time.Time
}

type NewFileParams struct {
	FileName   string
	FileType   string
	FileSize   int64
	FilePath   string
	ModuleName ModuleName
	UploaderID string
}

func NewFile(p NewFileParams) (*File, error) {
	if strings.TrimSpace(p.FileName) == "" {
		return nil, errors.NewValidationError("file name is required")
	}
	if len(p.FileName) > 500 {
		return nil, errors.NewValidationError("file name too long (max 500 characters)")
	}
	if strings.TrimSpace(p.FileType) == "" {
		return nil, errors.NewValidationError("file type is required")
	}
	if p.FileSize < 0 {
		return nil, errors.NewValidationError("file size cannot be negative")
	}
	if strings.TrimSpace(p.FilePath) == "" {
		return nil, errors.NewValidationError("file path is required")
	}
	if p.UploaderID == "" {
		return nil, errors.NewValidationError("uploader is required")
	}
	module := p.ModuleName
	if module == "" {
		module = ModuleGeneral
	}

	now := time.Now().UTC()
	return &File{
		fileName:   strings.TrimSpace(p.FileName),
		fileType:   p.FileType,
		fileSize:   p.FileSize,
		filePath:   p.FilePath,
		moduleName: module,
		uploaderID: p.UploaderID,
		uploadDate: now,
		updatedAt:  now,
	}, nil
}

type FileReconstructParams struct {
	ID         string
	FileName   string
	FileType   string
	FileSize   int64
	FilePath   string
	ModuleName ModuleName
	UploaderID string
	IsDeleted  bool
	UploadDate time.Time
	UpdatedAt  time.Time
}

func ReconstructFileWithParams(p FileReconstructParams) *File {
	return &File{
		id:         p.ID,
		fileName:   p.FileName,
		fileType:   p.FileType,
		fileSize:   p.FileSize,
		filePath:   p.FilePath,
		moduleName: p.ModuleName,
		uploaderID: p.UploaderID,
		isDeleted:  p.IsDeleted,
		uploadDate: p.UploadDate,
		updatedAt:  p.UpdatedAt,
	}
}

func (f *File) ID() string { return f.id }
func (f *File) FileName() string { return f.fileName }
func (f *File) FileType() string { return f.fileType }
func (f *File) FileSize() int64 { return f.fileSize }
func (f *File) FilePath() string { return f.filePath }
func (f *File) ModuleName() ModuleName { return f.moduleName }
func (f *File) UploaderID() string { return f.uploaderID }
func (f *File) IsDeleted() bool { return f.isDeleted }
func (f *File) UploadDate() time.Time { return f.uploadDate }
func (f *File) UpdatedAt() time.Time { return f.updatedAt }

func (f *File) SetID(id string) error {
	if f.id != "" {
		return errors.NewInternalError("file ID is already set")
	}
	f.id = id
	return nil
}

type FileUpdate struct {
	FileName   *string
	ModuleName *ModuleName
}

func (f *File) Apply(u FileUpdate) error {
	if u.FileName != nil {
		if strings.TrimSpace(*u.FileName) == "" {
			return errors.NewValidationError("file name is required")
		}
		f.fileName = strings.TrimSpace(*u.FileName)
	}
	if u.ModuleName != nil {
		f.moduleName = *u.ModuleName
	}
	f.updatedAt = time.Now().UTC()
	return nil
}

func (f *File) MarkDeleted() {
	f.isDeleted = true
	f.updatedAt = time.Now().UTC()
}

func (f *File) Restore() error {
	if !f.isDeleted {
		return errors.NewBadRequestError("file is not deleted")
	}
	f.isDeleted = false
	f.updatedAt = time.Now().UTC()
	return nil
}
