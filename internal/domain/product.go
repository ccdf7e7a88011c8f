package domain

// Product is a single catalog entry fetched from the remote product API.
// Identity is the barcode; records are immutable once fetched.
type Product struct {
	Barcode     string `json:"barcode"`
	Description string `json:"description"`
	Ingredients string `json:"ingredients"` // free text, comma/space/semicolon-delimited
}

// Safety is the tri-state outcome of classifying a product's ingredients
// against a user's keyword sets.
type Safety int

const (
	SafetySafe Safety = iota
	SafetySensitive
	SafetyUnsafe
)

// SafetyVerdict pairs the classification with its display label and severity color.
type SafetyVerdict struct {
	Safety Safety `json:"-"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

var (
	VerdictUnsafe    = SafetyVerdict{Safety: SafetyUnsafe, Label: "Unsafe allergy", Color: "#FF4C4C"}
	VerdictSensitive = SafetyVerdict{Safety: SafetySensitive, Label: "Sensitive ingredient detected", Color: "#F5B227"}
	VerdictSafe      = SafetyVerdict{Safety: SafetySafe, Label: "Safe", Color: "#4CAF50"}
)

// IsSafe reports whether the verdict allows the product to be recommended.
func (v SafetyVerdict) IsSafe() bool {
	return v.Safety == SafetySafe
}

// AnnotatedProduct is a product plus the safety verdict computed for the
// current user. Derived per request, never stored.
type AnnotatedProduct struct {
	Product
	Verdict SafetyVerdict `json:"verdict"`
}
