package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/chip8sim/config"
)

var _ = Describe("Config", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "chip8-config-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	Describe("Defaults", func() {
		It("should be valid", func() {
			Expect(config.DefaultConfig().Validate()).To(Succeed())
		})

		It("should draw white on black at scale 8", func() {
			c := config.DefaultConfig()
			Expect(c.Scale).To(Equal(8))
			Expect(c.Foreground).To(Equal(config.RGB{R: 255, G: 255, B: 255}))
			Expect(c.Background).To(Equal(config.RGB{}))
			Expect(c.ToneHz).To(Equal(800))
		})

		It("should cover all sixteen keys", func() {
			seen := map[uint8]bool{}
			for _, key := range config.DefaultKeyMap() {
				seen[key] = true
			}
			Expect(seen).To(HaveLen(16))
		})

		DescribeTable("layout",
			func(name string, key uint8) {
				got, ok := config.DefaultConfig().Lookup(name)
				Expect(ok).To(BeTrue())
				Expect(got).To(Equal(key))
			},
			Entry(nil, "q", uint8(0xA)),
			Entry(nil, "Y", uint8(0xF)),
			Entry(nil, "u", uint8(0x0)),
			Entry(nil, "i", uint8(0x1)),
			Entry(nil, "a", uint8(0x2)),
			Entry(nil, "k", uint8(0x9)),
		)

		It("should not bind unrelated keys", func() {
			_, ok := config.DefaultConfig().Lookup("z")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("LoadConfig", func() {
		It("should overlay the file on the defaults", func() {
			path := filepath.Join(tempDir, "c.json")
			Expect(os.WriteFile(path, []byte(`{"scale": 12, "volume": 0.5}`), 0644)).To(Succeed())

			c, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Scale).To(Equal(12))
			Expect(c.Volume).To(Equal(0.5))
			Expect(c.ToneHz).To(Equal(800))
			Expect(c.KeyMap).To(Equal(config.DefaultKeyMap()))
		})

		It("should replace the key map wholesale", func() {
			path := filepath.Join(tempDir, "c.json")
			Expect(os.WriteFile(path, []byte(`{"key_map": {"x": 5}}`), 0644)).To(Succeed())

			c, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.KeyMap).To(Equal(map[string]uint8{"x": 5}))
		})

		It("should fail on a missing file", func() {
			_, err := config.LoadConfig(filepath.Join(tempDir, "nope.json"))
			Expect(err).To(MatchError(os.ErrNotExist))
		})

		It("should fail on malformed JSON", func() {
			path := filepath.Join(tempDir, "bad.json")
			Expect(os.WriteFile(path, []byte(`{scale`), 0644)).To(Succeed())

			_, err := config.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SaveConfig", func() {
		It("should round-trip through a file", func() {
			path := filepath.Join(tempDir, "out.json")
			c := config.DefaultConfig()
			c.ToneHz = 440

			Expect(c.SaveConfig(path)).To(Succeed())
			loaded, err := config.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(c))
		})
	})

	Describe("Validate", func() {
		DescribeTable("rejects",
			func(mutate func(*config.Config), msg string) {
				c := config.DefaultConfig()
				mutate(c)
				Expect(c.Validate()).To(MatchError(ContainSubstring(msg)))
			},
			Entry("zero scale", func(c *config.Config) { c.Scale = 0 }, "scale"),
			Entry("zero tone", func(c *config.Config) { c.ToneHz = 0 }, "tone_hz"),
			Entry("loud volume", func(c *config.Config) { c.Volume = 1.5 }, "volume"),
			Entry("zero hold", func(c *config.Config) { c.KeyHoldTicks = 0 }, "key_hold_ticks"),
			Entry("long key name", func(c *config.Config) { c.KeyMap["space"] = 1 }, "single lowercase"),
			Entry("key out of range", func(c *config.Config) { c.KeyMap["z"] = 0x10 }, "beyond 0xF"),
		)
	})

	Describe("Clone", func() {
		It("should not share the key map", func() {
			c := config.DefaultConfig()
			clone := c.Clone()
			clone.KeyMap["q"] = 0
			clone.Scale = 2

			Expect(c.KeyMap["q"]).To(Equal(uint8(0xA)))
			Expect(c.Scale).To(Equal(8))
		})
	})
})
