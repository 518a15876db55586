// Package slug turns free text, such as an agency name, into a lowercase
// ASCII identifier suitable for a subdomain or URL path segment.
//
//	slug.Make("Bali Tour & Travel", slug.Replace(map[string]string{"&": "and"}))
//	// bali-tour-and-travel
//
//	slug.Make("Agência São João", slug.MaxLength(63), slug.WithSuffix(4))
//	// agencia-sao-joao-x7g3
package slug
