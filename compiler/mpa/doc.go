//
// Copyright (c) 2023 Markku Rossi
//
// All rights reserved.
//

// Package mpa implements multi-precision arithmetics. These functions
// are used in constant folding and their implementation uses the same
// digital circuits which are used in garbled circuit evaluation. This
// ensures that they provide identical results for different
// arithmetic calculations.
package mpa
