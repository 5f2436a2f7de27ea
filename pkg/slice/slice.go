// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with small generic
helpers used when flattening upstream records.
*/
package slice

// Map transforms every element of input. A nil input yields nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter keeps the elements for which predicate returns true, in order.
func Filter[T any](input []T, predicate func(T) bool) []T {
	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// FirstOr returns the first element of input, or fallback when input is empty.
func FirstOr[T any](input []T, fallback T) T {
	if len(input) == 0 {
		return fallback
	}
	return input[0]
}
