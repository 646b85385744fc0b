package constants

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	RecurringDaily   = "daily"
	RecurringWeekly  = "weekly"
	RecurringMonthly = "monthly"

	DefaultCategory = "personal"

	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
)
