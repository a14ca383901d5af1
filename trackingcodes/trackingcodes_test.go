package trackingcodes_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/afya-care/monitoring/trackingcodes"
)

var _ = Describe("Normalize", func() {
	It("uppercases the code", func() {
		Expect(trackingcodes.Normalize("afya-ab12c")).To(Equal("AFYA-AB12C"))
	})

	It("strips surrounding whitespace", func() {
		Expect(trackingcodes.Normalize("  AFYA-AB12C\n")).To(Equal("AFYA-AB12C"))
	})
})

var _ = Describe("ValidateFormat", func() {
	DescribeTable("format checks",
		func(code string, expected bool) {
			Expect(trackingcodes.ValidateFormat(code)).To(Equal(expected))
		},
		Entry("a well-formed code", "AFYA-AB12C", true),
		Entry("all letters", "AFYA-ABCDE", true),
		Entry("all digits", "AFYA-12345", true),
		Entry("too short a suffix", "AFYA-AB12", false),
		Entry("too long a suffix", "AFYA-AB12CD", false),
		Entry("a wrong prefix", "BFYA-AB12C", false),
		Entry("a missing prefix", "AB12C", false),
		Entry("lowercase input", "afya-ab12c", false),
		Entry("an empty string", "", false),
	)

	It("accepts lowercase input once normalized", func() {
		Expect(trackingcodes.ValidateFormat(trackingcodes.Normalize("afya-ab12c"))).To(BeTrue())
	})
})
