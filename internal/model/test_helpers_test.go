// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

// jsonArrayParseTest defines a test case for parsing JSON arrays.
type jsonArrayParseTest struct {
	name  string
	input string
	want  []string
}

// standardJSONArrayParseTests returns common test cases for JSON array parsing,
// including the malformed inputs that must decode to an empty list.
func standardJSONArrayParseTests(singleItem, multiItem1, multiItem2 string) []jsonArrayParseTest {
	return []jsonArrayParseTest{
		{name: "empty string", input: "", want: []string{}},
		{name: "empty array", input: "[]", want: []string{}},
		{name: "null", input: "null", want: []string{}},
		{name: "single item", input: `["` + singleItem + `"]`, want: []string{singleItem}},
		{name: "multiple items", input: `["` + multiItem1 + `","` + multiItem2 + `"]`, want: []string{multiItem1, multiItem2}},
		{name: "malformed", input: `["unterminated`, want: []string{}},
		{name: "object instead of array", input: `{"a":1}`, want: []string{}},
	}
}

// assertStringSliceEqual asserts that two string slices are equal.
// A nil slice never equals a non-nil want.
func assertStringSliceEqual(t *testing.T, testName string, got, want []string) {
	t.Helper()
	if got == nil && want != nil {
		t.Errorf("%s: got nil, want %v", testName, want)
		return
	}
	if len(got) != len(want) {
		t.Errorf("%s: got %v, want %v", testName, got, want)
		return
	}
	for i, v := range got {
		if v != want[i] {
			t.Errorf("%s[%d] = %q, want %q", testName, i, v, want[i])
		}
	}
}
