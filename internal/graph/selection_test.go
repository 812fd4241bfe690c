package graph_test

import (
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"postgraph/internal/graph"
)

var _ = Describe("ParseSelection", func() {
	It("parses scalar and nested fields in order", func() {
		sel, err := graph.ParseSelection("id name posts { id title comments { text } } email")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(sel).Should(Equal(graph.Select("id", "name").
			With("posts", graph.Select("id", "title").With("comments", graph.Select("text"))).
			With("email", nil)))
	})

	It("accepts commas and an enclosing pair of braces", func() {
		sel, err := graph.ParseSelection("{ id, author { name }, }")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(sel).Should(Equal(graph.Select("id").With("author", graph.Select("name"))))
	})

	It("returns an empty selection for blank input", func() {
		sel, err := graph.ParseSelection("  ")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(sel).Should(BeEmpty())
	})

	It("renders back to the same syntax", func() {
		src := "id posts { id author { name } }"
		sel, err := graph.ParseSelection(src)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(sel.String()).Should(Equal(src))
	})

	DescribeTable("rejects malformed input",
		func(src string) {
			_, err := graph.ParseSelection(src)
			Expect(err).Should(HaveOccurred())
			Expect(errors.Is(err, graph.ErrBadRequest)).Should(BeTrue())
		},
		Entry("unclosed nested selection", "posts { id"),
		Entry("unclosed outer braces", "{ id name"),
		Entry("stray closing brace", "id }"),
		Entry("empty nested selection", "posts { }"),
		Entry("name starting with a digit", "1id"),
		Entry("unexpected punctuation", "id (x)"),
	)
})
