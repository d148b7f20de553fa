package llm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/chatrelay/pkg/llm"
)

var _ = Describe("AppendExchange", func() {
	It("appends a user then an assistant turn to an empty history", func() {
		out := llm.AppendExchange(nil, "hi", "hello")

		Expect(out).To(Equal([]llm.Turn{
			{Role: llm.RoleUser, Content: "hi"},
			{Role: llm.RoleAssistant, Content: "hello"},
		}))
	})

	It("preserves prior order", func() {
		history := []llm.Turn{
			{Role: llm.RoleUser, Content: "one"},
			{Role: llm.RoleAssistant, Content: "two"},
		}
		out := llm.AppendExchange(history, "three", "four")

		Expect(out).To(HaveLen(4))
		Expect(out[:2]).To(Equal(history))
		Expect(out[2].Role).To(Equal(llm.RoleUser))
		Expect(out[3].Role).To(Equal(llm.RoleAssistant))
	})

	It("does not write into the caller's backing array", func() {
		backing := make([]llm.Turn, 1, 8)
		backing[0] = llm.Turn{Role: llm.RoleUser, Content: "kept"}

		_ = llm.AppendExchange(backing, "a", "b")

		Expect(backing[:cap(backing)][1]).To(Equal(llm.Turn{}))
	})
})
