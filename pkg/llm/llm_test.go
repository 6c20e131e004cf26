package llm_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/cairofix/pkg/llm"
)

var _ = Describe("ChatRequest", func() {
	It("serializes to the exact messages-only body", func() {
		req := llm.NewChatRequest(llm.NewUserMessage("fix this"))

		data, err := json.Marshal(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"messages":[{"role":"user","content":"fix this"}]}`))
	})

	It("preserves message order", func() {
		req := llm.NewChatRequest(
			llm.Message{Role: llm.RoleSystem, Content: "a"},
			llm.NewUserMessage("b"),
		)

		data, err := json.Marshal(req)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"messages":[{"role":"system","content":"a"},{"role":"user","content":"b"}]}`))
	})
})

var _ = Describe("ChatResponse", func() {
	It("tells an absent content field apart from an empty one", func() {
		var withEmpty, without llm.ChatResponse
		Expect(json.Unmarshal([]byte(`{"choices":[{"message":{"content":""}}]}`), &withEmpty)).To(Succeed())
		Expect(json.Unmarshal([]byte(`{"choices":[{"message":{"role":"assistant"}}]}`), &without)).To(Succeed())

		Expect(withEmpty.Choices[0].Message.Content).NotTo(BeNil())
		Expect(*withEmpty.Choices[0].Message.Content).To(BeEmpty())
		Expect(without.Choices[0].Message.Content).To(BeNil())
	})

	It("decodes usage when present", func() {
		var resp llm.ChatResponse
		body := `{"id":"c1","model":"cairo-coder","choices":[],"usage":{"prompt_tokens":3,"completion_tokens":5,"total_tokens":8}}`
		Expect(json.Unmarshal([]byte(body), &resp)).To(Succeed())
		Expect(resp.Usage).NotTo(BeNil())
		Expect(resp.Usage.TotalTokens).To(Equal(8))
	})
})
