package configcmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/cairofix/cmd/cairofix/config"
	"github.com/papercomputeco/cairofix/pkg/config"
	"github.com/papercomputeco/cairofix/pkg/dotdir"
)

var _ = Describe("NewConfigCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := configcmder.NewConfigCmd()
		Expect(cmd.Use).To(Equal("config"))
	})

	It("has set, get, and list subcommands", func() {
		cmd := configcmder.NewConfigCmd()
		cmds := cmd.Commands()
		subcommands := make([]string, 0, len(cmds))
		for _, sub := range cmds {
			subcommands = append(subcommands, sub.Name())
		}
		Expect(subcommands).To(ContainElements("set", "get", "list"))
	})
})

var _ = Describe("Config command execution", func() {
	var (
		tmpDir  string
		origDir string
		out     *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "cairofix-config-test-*")
		Expect(err).NotTo(HaveOccurred())

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		// Create a local .cairofix dir so the manager picks it up
		err = os.MkdirAll(filepath.Join(tmpDir, dotdir.DirName), 0o755)
		Expect(err).NotTo(HaveOccurred())

		err = os.Chdir(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		out = &bytes.Buffer{}
	})

	AfterEach(func() {
		err := os.Chdir(origDir)
		Expect(err).NotTo(HaveOccurred())
		os.RemoveAll(tmpDir)
	})

	run := func(args ...string) error {
		cmd := configcmder.NewConfigCmd()
		cmd.SetOut(out)
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	Describe("set subcommand", func() {
		It("sets a config value successfully", func() {
			Expect(run("set", "client.timeout", "90s")).To(Succeed())

			// Verify the config file was created
			_, err := os.Stat(filepath.Join(tmpDir, dotdir.DirName, "config.toml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).To(ContainSubstring("client.timeout"))
		})

		It("writes into --config-dir when it is given", func() {
			override := filepath.Join(tmpDir, "elsewhere")

			cmd := configcmder.NewConfigCmd()
			cmd.SetOut(out)
			cmd.PersistentFlags().String("config-dir", "", "Override path to .cairofix/ config directory")
			cmd.SetArgs([]string{"set", "output.render", "auto", "--config-dir", override})
			Expect(cmd.Execute()).To(Succeed())

			cfger, err := config.NewConfiger(override)
			Expect(err).NotTo(HaveOccurred())
			value, err := cfger.GetConfigValue("output.render")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("auto"))
		})

		It("rejects unknown keys", func() {
			Expect(run("set", "invalid_key", "value")).To(MatchError(ContainSubstring("unknown config key")))
		})

		It("requires exactly two arguments", func() {
			Expect(run("set", "client.timeout")).To(HaveOccurred())
		})

		It("rejects zero arguments", func() {
			Expect(run("set")).To(HaveOccurred())
		})

		DescribeTable("rejects invalid values",
			func(key, value string) {
				Expect(run("set", key, value)).To(HaveOccurred())
				_, err := os.Stat(filepath.Join(tmpDir, dotdir.DirName, "config.toml"))
				Expect(os.IsNotExist(err)).To(BeTrue())
			},
			Entry("endpoint without scheme", "client.endpoint", "api.cairo-coder.com"),
			Entry("negative timeout", "client.timeout", "-5s"),
			Entry("unknown render mode", "output.render", "sometimes"),
		)
	})

	Describe("get subcommand", func() {
		It("gets a previously set value", func() {
			Expect(run("set", "prompt.instruction", "explain this contract")).To(Succeed())

			out.Reset()
			Expect(run("get", "prompt.instruction")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("explain this contract"))
		})

		It("shows the default for an unset key", func() {
			Expect(run("get", "client.endpoint")).To(Succeed())
			Expect(out.String()).To(ContainSubstring("https://api.cairo-coder.com/v1/chat/completions"))
		})

		It("rejects unknown keys", func() {
			Expect(run("get", "invalid_key")).To(HaveOccurred())
		})

		It("requires exactly one argument", func() {
			Expect(run("get")).To(HaveOccurred())
		})
	})

	Describe("list subcommand", func() {
		It("lists every key", func() {
			Expect(run("list")).To(Succeed())
			for _, key := range config.ValidConfigKeys() {
				Expect(out.String()).To(ContainSubstring(key))
			}
		})

		It("shows set values", func() {
			Expect(run("set", "client.timeout", "45s")).To(Succeed())

			out.Reset()
			Expect(run("list")).To(Succeed())
			Expect(out.String()).To(ContainSubstring(`"45s"`))
		})

		It("rejects any arguments", func() {
			Expect(run("list", "extra")).To(HaveOccurred())
		})
	})

	Describe("shell completion", func() {
		It("completes config keys for get", func() {
			root := configcmder.NewConfigCmd()
			get, _, err := root.Find([]string{"get"})
			Expect(err).NotTo(HaveOccurred())

			completions, directive := get.ValidArgsFunction(get, []string{}, "")
			Expect(completions).To(Equal(config.ValidConfigKeys()))
			Expect(directive).To(Equal(cobra.ShellCompDirectiveNoFileComp))
		})
	})
})
