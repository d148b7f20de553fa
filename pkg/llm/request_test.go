package llm_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/chatrelay/pkg/llm"
)

var _ = Describe("GenerateRequest", func() {
	It("flattens the generation config next to the prompt", func() {
		req := llm.NewGenerateRequest(llm.DefaultGenerationConfig(), "hi")

		data, err := json.Marshal(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(MatchJSON(`{
			"prompt": "hi",
			"max_new_tokens": 512,
			"do_sample": true,
			"temperature": 0.7,
			"top_p": 0.9
		}`))
	})
})

var _ = Describe("ChatRequest", func() {
	It("distinguishes an absent message from an empty one", func() {
		var absent, empty llm.ChatRequest
		Expect(json.Unmarshal([]byte(`{}`), &absent)).To(Succeed())
		Expect(json.Unmarshal([]byte(`{"message":""}`), &empty)).To(Succeed())

		Expect(absent.Message).To(BeNil())
		Expect(empty.Message).NotTo(BeNil())
		Expect(*empty.Message).To(BeEmpty())
	})
})
