//go:build !debug

package chart

const debugAssertions = false
