package servecmder

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/chatrelay/pkg/llm"
)

var _ = Describe("Serve Command", func() {
	var (
		upstream *httptest.Server
		tmpDir   string
	)

	BeforeEach(func() {
		upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"generated_text":"served"}`))
		}))
		tmpDir = GinkgoT().TempDir()
	})

	AfterEach(func() {
		upstream.Close()
	})

	Describe("loadConfig", func() {
		It("lets the flag override the config file", func() {
			path := filepath.Join(tmpDir, "chatrelay.toml")
			Expect(os.WriteFile(path, []byte(`
inference_url = "http://from-file/generate"
timeout = "5s"
`), 0o600)).To(Succeed())

			cmder := &serveCommander{configPath: path, inferenceURL: "http://from-flag/generate"}
			config, err := cmder.loadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(config.InferenceURL).To(Equal("http://from-flag/generate"))
			Expect(config.Timeout).To(Equal(5 * time.Second))
		})

		It("fails on an unreadable config file", func() {
			cmder := &serveCommander{configPath: filepath.Join(tmpDir, "missing.toml")}
			_, err := cmder.loadConfig()
			Expect(err).To(HaveOccurred())
		})
	})

	It("serves chat requests until the context is cancelled", func() {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())

		cmder := &serveCommander{inferenceURL: upstream.URL, listener: listener}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- cmder.run(ctx)
		}()

		addr := "http://" + listener.Addr().String()
		Eventually(func() error {
			resp, err := http.Get(addr + "/health")
			if err == nil {
				resp.Body.Close()
			}
			return err
		}, 5*time.Second, 50*time.Millisecond).Should(Succeed())

		resp, err := http.Post(addr+"/chat", "application/json", strings.NewReader(`{"message":"hi"}`))
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		var out llm.ChatResponse
		Expect(json.Unmarshal(body, &out)).To(Succeed())
		Expect(out.Response).To(Equal("served"))
		Expect(out.ConversationHistory).To(HaveLen(2))

		resp.Body.Close()
		http.DefaultClient.CloseIdleConnections()
		cancel()
		Eventually(done, 5*time.Second).Should(Receive(BeNil()))
	})
})
