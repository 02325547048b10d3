// Package normalize maps stored listing and order documents onto their
// canonical shapes.
//
// Documents written by earlier versions of the service use different field
// names (Price vs price, image vs imageUrl, date vs pickupDate) and different
// encodings (numbers, numeric strings, Mongo extended JSON wrappers). Every
// function here is total: a missing or malformed field falls back to a default
// and never produces an error. Input maps are never modified.
package normalize
