package pool

type Status string

const (
	StatusCreated       Status = "Created"
	StatusFunding       Status = "Funding"
	StatusTargetReached Status = "Target Reached"
	StatusSentToLab     Status = "Sent to Lab"
	StatusResultsReady  Status = "Results Ready"
)

var validStatuses = map[Status]bool{
	StatusCreated:       true,
	StatusFunding:       true,
	StatusTargetReached: true,
	StatusSentToLab:     true,
	StatusResultsReady:  true,
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) String() string {
	return string(s)
}

func AllStatuses() []Status {
	return []Status{StatusCreated, StatusFunding, StatusTargetReached, StatusSentToLab, StatusResultsReady}
}
