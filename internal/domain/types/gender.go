// Package types define tipos de dominio compartidos entre paquetes.
package types

// Gender es el género declarado en el perfil de un vendedor.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid retorna true si el género es uno de los valores soportados.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
