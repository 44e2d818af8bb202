package catalog

import "errors"

// Errores sentinela de los services. Los controllers los mapean a
// respuestas HTTP con errors.Is; acá no hay nada de HTTP.
var (
	// ErrNameRequired indica nombre vacío después de recortar espacios.
	ErrNameRequired = errors.New("catalog: name is required")

	// ErrIDRequired indica que un update llegó sin id.
	ErrIDRequired = errors.New("catalog: id is required")

	// ErrSellerRequired indica un producto sin vendedor.
	ErrSellerRequired = errors.New("catalog: seller id is required")

	// ErrAccountIDRequired indica un vendedor sin account id.
	ErrAccountIDRequired = errors.New("catalog: account id is required")

	// ErrInvalidGender indica un género fuera de la enumeración.
	ErrInvalidGender = errors.New("catalog: invalid gender")

	// ErrUnknownSeller indica que el vendedor referenciado por un
	// producto no existe. Es un error referencial (400), no un 404: el
	// recurso de la URL es el producto, no el vendedor.
	ErrUnknownSeller = errors.New("catalog: unknown seller")

	// ErrNoEffect indica un update que debía modificar exactamente un
	// registro y modificó cero. Violación de supuestos: clase 500.
	ErrNoEffect = errors.New("catalog: update had no effect")
)
