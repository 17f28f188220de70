package domain

// Variant identifies one of the caption lengths produced per generation.
// Values include VariantShort, VariantMedium, and VariantLong.
type Variant string

const (
	VariantShort  Variant = "short"
	VariantMedium Variant = "medium"
	VariantLong   Variant = "long"
)

// Variants returns every caption variant in presentation order.
// The order is fixed: short, medium, long.
func Variants() []Variant {
	return []Variant{VariantShort, VariantMedium, VariantLong}
}

// Caption represents one generated caption variant shown to the user.
// Text may be empty when the model omitted the variant; the record is
// still rendered so the user sees which variant came back blank.
type Caption struct {
	ID      string  `json:"id"`
	Variant Variant `json:"variant"`
	Text    string  `json:"text"`
}

// ResponseRecord is the payload shape the model is instructed to return.
// Keys absent from the model output decode to empty strings.
type ResponseRecord struct {
	Short  string `json:"short"`
	Medium string `json:"medium"`
	Long   string `json:"long"`
}
