package dto

type ProgressOutput struct {
	CompletedIDs []string
	TotalPoints  int
}

type MarkCompleteOutput struct {
	Added    bool
	Progress ProgressOutput
}

type ResetInput struct {
	Confirmed bool
}

type ResetOutput struct {
	Reset    bool
	Progress ProgressOutput
}

type SummaryOutput struct {
	Completed int
	Total     int
	Points    int
	Percent   int
	Tier      string
	Message   string
}
