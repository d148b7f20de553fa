package transcript_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/chatrelay/pkg/llm"
	"github.com/papercomputeco/chatrelay/pkg/transcript"
)

var _ = Describe("Fingerprint", func() {
	hello := llm.Turn{Role: llm.RoleUser, Content: "Hello"}
	hi := llm.Turn{Role: llm.RoleAssistant, Content: "Hi there!"}

	It("is empty for an empty history", func() {
		Expect(transcript.Fingerprint(nil)).To(BeEmpty())
	})

	It("produces a SHA-256 hex string", func() {
		fp := transcript.Fingerprint([]llm.Turn{hello})

		Expect(fp).To(MatchRegexp("^[a-f0-9]{64}$"))
	})

	It("is stable for the same history", func() {
		a := transcript.Fingerprint([]llm.Turn{hello, hi})
		b := transcript.Fingerprint([]llm.Turn{hello, hi})

		Expect(a).To(Equal(b))
	})

	It("depends on turn order", func() {
		a := transcript.Fingerprint([]llm.Turn{hello, hi})
		b := transcript.Fingerprint([]llm.Turn{hi, hello})

		Expect(a).NotTo(Equal(b))
	})

	It("depends on the role as well as the content", func() {
		a := transcript.Fingerprint([]llm.Turn{{Role: llm.RoleUser, Content: "x"}})
		b := transcript.Fingerprint([]llm.Turn{{Role: llm.RoleAssistant, Content: "x"}})

		Expect(a).NotTo(Equal(b))
	})

	It("chains each turn onto the previous hash", func() {
		first := transcript.TurnHash(hello, "")

		Expect(transcript.Fingerprint([]llm.Turn{hello, hi})).To(Equal(transcript.TurnHash(hi, first)))
	})

	It("diverges when the same turn follows different prefixes", func() {
		other := llm.Turn{Role: llm.RoleUser, Content: "Goodbye"}
		a := transcript.Fingerprint([]llm.Turn{hello, hi})
		b := transcript.Fingerprint([]llm.Turn{other, hi})

		Expect(a).NotTo(Equal(b))
	})
})
