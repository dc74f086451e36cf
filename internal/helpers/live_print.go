package helpers

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/acarl005/stripansi"
)

// LiveLogger prints log lines above a sticky footer that is redrawn in place,
// eg. the square currently being searched while finished squares scroll by.
type LiveLogger struct {
	out     io.Writer
	footers []string

	lock sync.Mutex
}

var _ Logger = &LiveLogger{}

func NewLiveLogger(out io.Writer) *LiveLogger {
	l := &LiveLogger{out: out, footers: []string{}}
	l.printLive(Empty[string](), "", l.footerString())
	return l
}

type _footerLogger struct {
	logger *LiveLogger
	i      int
}

// NewFooterLogger returns a Logger that overwrites footer line i instead of
// scrolling.
func NewFooterLogger(logger *LiveLogger, i int) Logger {
	return &_footerLogger{logger: logger, i: i}
}

func (l *_footerLogger) Println(v ...any) {
	l.logger.SetFooter(fmt.Sprintln(v...), l.i)
}
func (l *_footerLogger) Printf(format string, v ...any) {
	l.logger.SetFooter(fmt.Sprintf(format, v...), l.i)
}
func (l *_footerLogger) Print(v ...any) {
	l.logger.SetFooter(fmt.Sprint(v...), l.i)
}

func (l *LiveLogger) footerString() string {
	return strings.Join(l.footers, "\n")
}

func (l *LiveLogger) Println(v ...any) {
	l.Print(fmt.Sprintln(v...))
}

func (l *LiveLogger) Printf(format string, v ...any) {
	l.Print(fmt.Sprintf(format, v...))
}

func (l *LiveLogger) Print(xs ...any) {
	l.lock.Lock()
	defer l.lock.Unlock()

	footer := l.footerString()
	l.printLive(Some(fmt.Sprint(xs...)), footer, footer)
}

func runeCountIgnoringAnsi(s string) int {
	return utf8.RuneCountInString(stripansi.Strip(s))
}

// truncateLine clips s to width visible runes. Escape codes are dropped from
// clipped lines so a cut never leaves the terminal mid-sequence.
func truncateLine(s string, width int) string {
	if runeCountIgnoringAnsi(s) <= width {
		return s
	}
	runes := []rune(stripansi.Strip(s))
	return string(runes[:MaxInt(width-1, 0)]) + "…"
}

func (l *LiveLogger) SetFooter(s string, index int) {
	l.lock.Lock()
	defer l.lock.Unlock()

	s = truncateLine(strings.TrimSpace(s), termWidth())

	prevFooterString := l.footerString()

	for len(l.footers) <= index {
		l.footers = append(l.footers, "")
	}
	l.footers[index] = s

	l.printLive(Empty[string](), prevFooterString, l.footerString())
}

// Close leaves the footer on screen and moves the cursor below it.
func (l *LiveLogger) Close() {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.footers = []string{}
}

func (l *LiveLogger) printLive(output Optional[string], previousFooter string, footer string) {
	// move the cursor up over the old footer, clear to the end of the
	// screen, print the new output and then redraw the footer below it
	if previousFooter != "" {
		for i := 0; i < len(strings.Split(previousFooter, "\n")); i++ {
			fmt.Fprint(l.out, "\033[A")
		}
	}

	fmt.Fprint(l.out, "\033[J")

	if output.HasValue() {
		fmt.Fprint(l.out, output.Value())
	}

	if footer != "" {
		fmt.Fprintln(l.out, footer)
	}
}
