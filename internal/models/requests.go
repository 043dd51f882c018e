package models

// Form field names, shared by the HTML form, the JSON API and validation errors.
const (
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldCNIRecto = "cniRecto"
	FieldCNIVerso = "cniVerso"
)

// DefaultPhone pre-fills the phone input with the Côte d'Ivoire country code.
const DefaultPhone = "+225 "

// PartnerApplication is the "become a partner" form. Both CNI fields hold
// data URLs of the identity card faces.
type PartnerApplication struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"ci_phone"`
	CNIRecto string `json:"cniRecto" validate:"required,datauri"`
	CNIVerso string `json:"cniVerso" validate:"required,datauri"`
}

// DefaultPartnerApplication returns the form as shown when the dialog opens.
func DefaultPartnerApplication() PartnerApplication {
	return PartnerApplication{Phone: DefaultPhone}
}
