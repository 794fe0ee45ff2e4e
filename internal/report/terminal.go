package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/gopherlings/internal/exercise"
	"github.com/abhisek/gopherlings/internal/ui/theme"
)

const verifyBanner = `
All exercises seem to be done.
Recompiling and running all exercises to make sure that all of them are actually done.

`

// FinishLine is printed once every exercise passes the final check.
const FinishLine = `
+----------------------------------------------------+
|         You made it to the finish line!            |
+--------------------------  ------------------------+
                          \/
            ,_---~~~~~----._
     _,,_,*^____      _____` + "``" + `*g*\"*,
    / __/ /'     ^.  /      \ ^@q   f
   [  @f | @))    |  | @))   l  0 _/
    \` + "`" + `/   \~____ / __ \_____/    \
     |           _l__l_           I
     }          [______]           I
     ]            | | |            |
     ]             ~ ~             |
     |                            |
      |                           |

`

// Terminal writes verification progress to a terminal or any other writer.
type Terminal struct {
	w io.Writer
}

// NewTerminal returns a reporter writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) VerifyStarted() error {
	_, err := io.WriteString(t.w, verifyBanner)
	return err
}

func (t *Terminal) ExerciseStarted(ex *exercise.Exercise) error {
	_, err := fmt.Fprintf(t.w, "Running %s ... ", theme.Path.Render(ex.String()))
	return err
}

func (t *Terminal) ExerciseFinished(_ *exercise.Exercise, ok bool) error {
	var err error
	if ok {
		_, err = fmt.Fprintf(t.w, "%s\n", theme.Correct.Render("ok"))
	} else {
		_, err = fmt.Fprintf(t.w, "%s\n\n", theme.Incorrect.Render("FAILED"))
	}
	return err
}

func (t *Terminal) AllDone(finalMessage string) error {
	// Render pads every line of a block to its widest line, so the
	// surrounding blank lines stay outside the styled banner.
	banner := theme.Title.Render(strings.Trim(FinishLine, "\n"))
	_, err := fmt.Fprintf(t.w, "\n%s\n\n%s\n", banner, finalMessage)
	return err
}
