// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codename generates random release codenames.
package codename

import (
	_ "embed"
	"math/rand/v2"
	"strings"
)

var (
	//go:embed words/adjectives.txt
	adjectivesTxt string
	//go:embed words/nouns.txt
	nounsTxt string

	adjectives = strings.Fields(adjectivesTxt)
	nouns      = strings.Fields(nounsTxt)
)

// intn is swapped in tests.
var intn = rand.IntN

// Random returns "<adjective><sep><noun>". An empty sep defaults to "-".
func Random(sep string) string {
	if sep == "" {
		sep = "-"
	}
	return pick(adjectives) + sep + pick(nouns)
}

func pick(words []string) string {
	return words[intn(len(words))]
}
