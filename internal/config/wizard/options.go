package wizard

import "github.com/charmbracelet/huh"

// ModelOption represents a generation model choice.
type ModelOption struct {
	Value       string
	Label       string
	Description string
}

// Models contains the generation models offered by the wizard.
var Models = []ModelOption{
	{Value: "gpt-4", Label: "gpt-4", Description: "Default, best quality"},
	{Value: "gpt-4o", Label: "gpt-4o", Description: "Faster, cheaper"},
	{Value: "gpt-3.5-turbo", Label: "gpt-3.5-turbo", Description: "Cheapest, lower quality"},
}

// SuffixLengthOptions contains common random suffix lengths.
var SuffixLengthOptions = []huh.Option[int]{
	huh.NewOption("6 (short)", 6),
	huh.NewOption("10 (default)", 10),
	huh.NewOption("16 (long)", 16),
}

// ModelsToOptions converts ModelOption slice to huh.Option slice.
func ModelsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Models))
	for i, m := range Models {
		opts[i] = huh.NewOption(m.Label+" - "+m.Description, m.Value)
	}
	return opts
}
