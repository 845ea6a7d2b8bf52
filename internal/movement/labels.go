package movement

var typeLabels = map[Type]string{
	TypeEntrata: "Entrata",
	TypeUscita:  "Uscita",
}

var sectorLabels = map[Sector]string{
	SectorBar:           "Bar",
	SectorLibreria:      "Libreria",
	SectorDecimaOfferta: "Decima/Offerta",
}

var paymentLabels = map[PaymentMethod]string{
	PaymentSumup:    "Sumup",
	PaymentContanti: "Contanti",
	PaymentPaypal:   "PayPal",
}

var categoryLabels = map[Category]string{
	CategoryDonazioni:    "Donazioni",
	CategoryAffitto:      "Affitto",
	CategoryUtenze:       "Utenze",
	CategoryStipendi:     "Stipendi",
	CategoryForniture:    "Forniture",
	CategoryManutenzione: "Manutenzione",
	CategoryEventi:       "Eventi",
	CategoryAltro:        "Altro",
}

// Types, Sectors, PaymentMethods and Categories list the known values in display order.
var (
	Types          = []Type{TypeEntrata, TypeUscita}
	Sectors        = []Sector{SectorBar, SectorLibreria, SectorDecimaOfferta}
	PaymentMethods = []PaymentMethod{PaymentSumup, PaymentContanti, PaymentPaypal}
	Categories     = []Category{
		CategoryDonazioni, CategoryAffitto, CategoryUtenze, CategoryStipendi,
		CategoryForniture, CategoryManutenzione, CategoryEventi, CategoryAltro,
	}
)

// label returns the display string for v, or v itself when unknown.
func label[T ~string](labels map[T]string, v T) string {
	if l, ok := labels[v]; ok {
		return l
	}

	return string(v)
}

// fromLabel resolves either a raw value or its display label back to the raw value.
// Unknown input is returned unchanged.
func fromLabel[T ~string](labels map[T]string, s string) T {
	if _, ok := labels[T(s)]; ok {
		return T(s)
	}

	for v, l := range labels {
		if l == s {
			return v
		}
	}

	return T(s)
}

// Label returns the display string, or the raw value when it is not a known one.
func (t Type) Label() string          { return label(typeLabels, t) }
func (s Sector) Label() string        { return label(sectorLabels, s) }
func (p PaymentMethod) Label() string { return label(paymentLabels, p) }
func (c Category) Label() string      { return label(categoryLabels, c) }

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Valid reports whether s is a known sector.
func (s Sector) Valid() bool {
	_, ok := sectorLabels[s]
	return ok
}

// Valid reports whether p is a known payment method.
func (p PaymentMethod) Valid() bool {
	_, ok := paymentLabels[p]
	return ok
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseType accepts a raw value ("uscita") or a label ("Uscita").
func ParseType(s string) Type { return fromLabel(typeLabels, s) }

// ParseSector accepts a raw value or a label.
func ParseSector(s string) Sector { return fromLabel(sectorLabels, s) }

// ParsePaymentMethod accepts a raw value or a label.
func ParsePaymentMethod(s string) PaymentMethod { return fromLabel(paymentLabels, s) }

// ParseCategory accepts a raw value or a label.
func ParseCategory(s string) Category { return fromLabel(categoryLabels, s) }
