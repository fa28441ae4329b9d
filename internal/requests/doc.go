// Package requests models pending media requests and reads them from Ombi.
//
// Requests are a tagged variant: Kind selects whether the Movie or TV payload
// is populated. The Ombi client decodes the upstream shape, applies the
// pending filters, and degrades to an empty list when Ombi cannot be reached.
package requests
