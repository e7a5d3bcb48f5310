package pasteimport

// Names of the two entry points.
const (
	VariantExtract = "extract"
	VariantPlan    = "plan"
)

// Variant configures one import pipeline.
type Variant struct {
	Name        string
	Instruction string
	Model       string
	Temperature float32

	// RelayProviderStatus answers model API failures with the provider's own status
	// instead of 500.
	RelayProviderStatus bool

	// IncludePreferences adds the caller's preferences to the envelope sent to the model.
	IncludePreferences bool

	// RejectDuplicateLocations fails responses that repeat a venue, either within the
	// generated items or against existingItems.
	RejectDuplicateLocations bool
}

// ExtractVariant segments pasted text into items. Provider failures always answer 500.
func ExtractVariant(model string, temperature float32) Variant {
	return Variant{
		Name:        VariantExtract,
		Instruction: extractInstruction,
		Model:       model,
		Temperature: temperature,
	}
}

// PlanVariant authors a day of recommendations for the trip destination.
func PlanVariant(model string, temperature float32, rejectDuplicates bool) Variant {
	return Variant{
		Name:                     VariantPlan,
		Instruction:              planInstruction,
		Model:                    model,
		Temperature:              temperature,
		RelayProviderStatus:      true,
		IncludePreferences:       true,
		RejectDuplicateLocations: rejectDuplicates,
	}
}
