package onboarding

// Step is one screen of the onboarding form.
type Step int

const (
	StepPersonal Step = iota + 1
	StepSkills
	StepPricing
	StepReview

	firstStep = StepPersonal
	lastStep  = StepReview
)

// StepInfo labels a step for progress display.
type StepInfo struct {
	ID          Step   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Steps returns the four steps in order.
func Steps() []StepInfo {
	return []StepInfo{
		{ID: StepPersonal, Title: "Personal Info", Description: "Tell us about yourself"},
		{ID: StepSkills, Title: "Skills & Categories", Description: "What do you do?"},
		{ID: StepPricing, Title: "Pricing & Location", Description: "Where and how much?"},
		{ID: StepReview, Title: "Review & Submit", Description: "Final details"},
	}
}
