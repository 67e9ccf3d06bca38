package test_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/mock/gomock"
	"github.com/loopcontext/rcscript"
	"github.com/loopcontext/rcscript/test"
	mock_rcscript "github.com/loopcontext/rcscript/test/mock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const header = "// Resource script automatically generated by rcscript.\n" +
	"// Do not edit this file manually.\n\n#pragma code_page(65001)\n"

func identity(p string) (string, error) { return p, nil }

func render(b *rcscript.Build, cfg rcscript.Config) string {
	if cfg.ResolvePath == nil {
		cfg.ResolvePath = identity
	}
	var out bytes.Buffer
	Expect(b.Generate(&out, cfg)).To(Succeed())
	Expect(out.String()).To(HavePrefix(header))
	return strings.TrimPrefix(out.String(), header)
}

// block returns the part of script written for lang.
func block(script string, lang rcscript.Lang) string {
	marker := "LANGUAGE " + lang.String() + "\n"
	var sb strings.Builder
	for _, part := range strings.Split("\n"+script, "\nLANGUAGE ") {
		if part == "" {
			continue
		}
		if part = "LANGUAGE " + part; strings.HasPrefix(part, marker) {
			sb.WriteString(part)
			if !strings.HasSuffix(part, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func countLines(s string, prefix string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, "\t"), prefix) {
			n++
		}
	}
	return n
}

var _ = Describe("Resource script", func() {
	var observer *test.RecordingObserver

	BeforeEach(func() {
		observer = &test.RecordingObserver{}
	})

	It("should write a single string for the only language", func() {
		b := rcscript.WithOneLanguage().
			Resource(rcscript.Num(0), rcscript.NewStringTable().String(1, "OK").Build())
		script := render(b, rcscript.Config{Observer: observer})
		Expect(script).To(Equal("LANGUAGE 0x9, 0x1\nSTRINGTABLE \n{\n\t1, \"OK\"\n}\n"))
		Expect(observer.Ignored).To(BeEmpty())
	})

	It("should hide menu items without text for a language", func() {
		menu := rcscript.NewMenu().
			Item(101, rcscript.NoText().Lang(rcscript.LangENU, "Open")).
			Build()
		b := rcscript.New(rcscript.LangENU, rcscript.LangDEU).Resource(rcscript.Num(1), menu)
		script := render(b, rcscript.Config{Observer: observer})

		enu := block(script, rcscript.LangENU)
		deu := block(script, rcscript.LangDEU)
		Expect(countLines(enu, "MENUITEM") + countLines(enu, "POPUP")).To(Equal(1))
		Expect(countLines(deu, "MENUITEM") + countLines(deu, "POPUP")).To(Equal(0))
		Expect(observer.Skipped).To(ConsistOf("0x7, 0x1|MENUEX|1"))
	})

	It("should hide nested popup items per language", func() {
		menu := rcscript.NewMenu().
			Popup(rcscript.T("&File"), func(p *rcscript.PopupBuilder) {
				p.Item(100, rcscript.T("&Open")).
					Item(101, rcscript.NoText().Lang(rcscript.LangDEU, "&Drucken"))
			}).
			Build()
		b := rcscript.New(rcscript.LangENU, rcscript.LangDEU).Resource(rcscript.Num(1), menu)
		script := render(b, rcscript.Config{})

		Expect(countLines(block(script, rcscript.LangENU), "MENUITEM")).To(Equal(1))
		Expect(countLines(block(script, rcscript.LangDEU), "MENUITEM")).To(Equal(2))
	})

	It("should merge universal and language controls in declaration order", func() {
		dlg := rcscript.NewDialog().
			Rect(rcscript.Rect{Width: 100, Height: 50}).
			Control(rcscript.Control{Template: rcscript.TemplatePushButton, ID: 1, Text: rcscript.T("OK")}).
			LangControl(rcscript.LangDEU, rcscript.Control{Template: rcscript.TemplateLText, ID: 2, Text: rcscript.T("Hallo")}).
			Control(rcscript.Control{Template: rcscript.TemplatePushButton, ID: 3, Text: rcscript.T("Cancel")}).
			Build()
		b := rcscript.New(rcscript.LangENU, rcscript.LangDEU).Resource(rcscript.Num(10), dlg)
		script := render(b, rcscript.Config{})

		Expect(block(script, rcscript.LangDEU)).To(Equal("LANGUAGE 0x7, 0x1\n10 DIALOGEX 0, 0, 100, 50\n{\n" +
			"\tPUSHBUTTON \"OK\", 1, 0, 0, 0, 0\n" +
			"\tLTEXT \"Hallo\", 2, 0, 0, 0, 0\n" +
			"\tPUSHBUTTON \"Cancel\", 3, 0, 0, 0, 0\n" +
			"}\n"))
		Expect(block(script, rcscript.LangENU)).To(Equal("LANGUAGE 0x9, 0x1\n10 DIALOGEX 0, 0, 100, 50\n{\n" +
			"\tPUSHBUTTON \"OK\", 1, 0, 0, 0, 0\n" +
			"\tPUSHBUTTON \"Cancel\", 3, 0, 0, 0, 0\n" +
			"}\n"))
	})

	It("should override single-valued dialog properties per language", func() {
		dlg := rcscript.NewDialog().
			Rect(rcscript.Rect{Width: 100, Height: 50}).
			LangRect(rcscript.LangDEU, rcscript.Rect{Width: 140, Height: 50}).
			Font(rcscript.NewFont(8, "MS Shell Dlg")).
			LangFont(rcscript.LangJPN, rcscript.NewFont(9, "MS UI Gothic")).
			Build()
		b := rcscript.New(rcscript.LangENU, rcscript.LangDEU, rcscript.LangJPN).Resource(rcscript.Num(10), dlg)
		script := render(b, rcscript.Config{})

		Expect(block(script, rcscript.LangDEU)).To(ContainSubstring("DIALOGEX 0, 0, 140, 50\nFONT 8, \"MS Shell Dlg\""))
		Expect(block(script, rcscript.LangENU)).To(ContainSubstring("DIALOGEX 0, 0, 100, 50\nFONT 8, \"MS Shell Dlg\""))
		Expect(block(script, rcscript.LangJPN)).To(ContainSubstring("DIALOGEX 0, 0, 100, 50\nFONT 9, \"MS UI Gothic\""))
	})

	It("should only report meaningful identifiers where they are dropped", func() {
		b := rcscript.WithOneLanguage().
			Resource(rcscript.Num(rcscript.NotUsefulID), rcscript.NewStringTable().String(1, "a").Build()).
			Resource(rcscript.Num(42), rcscript.NewStringTable().String(2, "b").Build())
		render(b, rcscript.Config{Observer: observer})
		Expect(observer.Ignored).To(ConsistOf("0x9, 0x1|STRINGTABLE|42"))
	})

	It("should produce identical output when rendered twice or in parallel", func() {
		b := rcscript.WithNineLanguages().
			Resource(rcscript.Num(1), rcscript.IconFile("app.ico")).
			Resource(rcscript.Num(0), rcscript.NewStringTable().String(1, "OK").LangString(rcscript.LangKOR, 1, "확인").Build()).
			Resource(rcscript.Num(2), rcscript.NewAccelerators().Event(1, rcscript.VirtKeyEvent(rcscript.VKReturn, rcscript.ModNone)).Build())
		first := render(b, rcscript.Config{})
		Expect(render(b, rcscript.Config{})).To(Equal(first))
		Expect(render(b, rcscript.Config{Parallel: true})).To(Equal(first))
	})

	It("should return writer errors unchanged", func() {
		b := rcscript.WithOneLanguage().Resource(rcscript.Num(1), rcscript.IconFile("app.ico"))
		err := b.Generate(&test.FailingWriter{Budget: 10}, rcscript.Config{ResolvePath: identity})
		Expect(err).To(BeIdenticalTo(test.ErrWriteFailed))
	})

	Context("compile", func() {
		var (
			ctrl     *gomock.Controller
			compiler *mock_rcscript.MockCompiler
			dir      string
		)

		BeforeEach(func() {
			ctrl = gomock.NewController(GinkgoT())
			compiler = mock_rcscript.NewMockCompiler(ctrl)
			var err error
			dir, err = os.MkdirTemp("", "rcscript-suite-*")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			ctrl.Finish()
			_ = os.RemoveAll(dir)
		})

		It("should hand the generated script to the compiler", func() {
			path := filepath.Join(dir, "resource.rc")
			compiler.EXPECT().Compile(gomock.Any(), path).DoAndReturn(func(_ context.Context, p string) error {
				data, err := os.ReadFile(p)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(HavePrefix(header))
				return nil
			})

			b := rcscript.WithOneLanguage().Resource(rcscript.Num(0), rcscript.NewStringTable().String(1, "OK").Build())
			Expect(b.Compile(context.Background(), path, compiler, rcscript.Config{})).To(Succeed())
		})

		It("should wrap compiler failures", func() {
			path := filepath.Join(dir, "resource.rc")
			errTool := errors.New("RC1015: cannot open include file")
			compiler.EXPECT().Compile(gomock.Any(), path).Return(errTool)

			b := rcscript.WithOneLanguage().Resource(rcscript.Num(0), rcscript.NewStringTable().String(1, "OK").Build())
			err := b.Compile(context.Background(), path, compiler, rcscript.Config{})
			Expect(errors.Is(err, errTool)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(path))
		})

		It("should not call the compiler when generation fails", func() {
			path := filepath.Join(dir, "resource.rc")
			b := rcscript.WithOneLanguage().
				LangResource(rcscript.LangKOR, rcscript.Num(1), rcscript.IconFile("app.ico"))
			err := b.Compile(context.Background(), path, compiler, rcscript.Config{})
			Expect(errors.Is(err, rcscript.ErrUndeclaredLanguage)).To(BeTrue())
			_, statErr := os.Stat(path)
			Expect(os.IsNotExist(statErr)).To(BeTrue())
		})
	})
})
