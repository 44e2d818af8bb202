// Package repository define las entidades del catálogo y sus interfaces
// de repositorio.
//
// Estas interfaces representan contratos de negocio, independientes del
// almacenamiento subyacente (MySQL, MongoDB, memoria).
//
// Las implementaciones concretas viven en internal/store/adapters/.
//
// Arquitectura:
//
//	┌─────────────────────────────────────────────────────┐
//	│           Services / Controllers                    │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	                        ▼
//	┌─────────────────────────────────────────────────────┐
//	│        domain/repository (interfaces)               │
//	│  CategoryRepository, ProductRepository,             │
//	│  SellerRepository                                   │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	         ┌──────────────┼──────────────┐
//	         ▼              ▼              ▼
//	┌─────────────┐  ┌─────────────┐  ┌─────────────┐
//	│  adapters/  │  │  adapters/  │  │  adapters/  │
//	│    mysql    │  │    mongo    │  │   memory    │
//	└─────────────┘  └─────────────┘  └─────────────┘
//
// Convenciones:
//   - Context siempre es el primer parámetro
//   - Los métodos de actualización retornan la cantidad de registros
//     modificados; el llamador decide si cero es un error
//   - Errores de dominio están en errors.go
package repository
