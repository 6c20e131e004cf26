package utils

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("truncate", func() {
	It("returns the string unchanged when within the limit", func() {
		Expect(Truncate("short", 10)).To(Equal("short"))
	})

	It("returns the string unchanged when exactly at the limit", func() {
		Expect(Truncate("12345", 5)).To(Equal("12345"))
	})

	It("truncates with ellipsis when over the limit", func() {
		result := Truncate("this is a long string", 10)
		Expect(result).To(Equal("this is a ..."))
	})
})

var _ = Describe("truncate with multi-byte runes", func() {
	It("backs off to the previous rune boundary", func() {
		// "é" is two bytes, so a cut at byte 2 would split it.
		Expect(Truncate("aéb", 2)).To(Equal("a..."))
	})

	It("keeps a rune that ends exactly at the limit", func() {
		Expect(Truncate("aéb", 3)).To(Equal("aé..."))
	})
})
