package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"letlang/engine/errs"
)

type word struct {
	text   string
	opens  int
	closes int
}

func clean(raw string) word {
	w := word{}
	var sb strings.Builder
	for _, c := range raw {
		switch c {
		case '(':
			w.opens++
		case ')':
			w.closes++
		default:
			sb.WriteRune(c)
		}
	}
	w.text = sb.String()
	return w
}

func (w word) onlyClosing() bool {
	return w.text == "" && w.opens == 0 && w.closes > 0
}

// tokenizer splits input on whitespace and strips parentheses out of every
// word, keeping a running count of how deeply nested the input is.
type tokenizer struct {
	scanner *bufio.Scanner
	pending *word
	// balance is the number of currently open parentheses
	balance int
	// level is the nesting just inside the opening parentheses of the last
	// word returned by next
	level int
}

func newTokenizer(r io.Reader) *tokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &tokenizer{scanner: scanner}
}

func (t *tokenizer) peek() (*word, error) {
	if t.pending != nil {
		return t.pending, nil
	}
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return nil, fmt.Errorf("could not read program: %w", err)
		}
		return nil, nil
	}
	w := clean(t.scanner.Text())
	t.pending = &w
	return t.pending, nil
}

func (t *tokenizer) consume(w *word) {
	t.pending = nil
	t.level = t.balance + w.opens
	t.balance += w.opens - w.closes
}

// next returns the next non-empty word. Words made only of parentheses
// are counted and skipped.
func (t *tokenizer) next() (string, error) {
	for {
		w, err := t.peek()
		if err != nil {
			return "", err
		}
		if w == nil {
			return "", errs.Parsef("unexpected end of input")
		}
		t.consume(w)
		if w.text != "" {
			return w.text, nil
		}
	}
}

// expect consumes the next word and fails unless it is literal.
func (t *tokenizer) expect(literal string) error {
	got, err := t.next()
	if err != nil {
		return err
	}
	if got != literal {
		return errs.Parsef("expected '%s' but found '%s'", literal, got)
	}
	return nil
}

// skipClosing consumes any upcoming words made only of closing parentheses.
func (t *tokenizer) skipClosing() error {
	for {
		w, err := t.peek()
		if err != nil {
			return err
		}
		if w == nil || !w.onlyClosing() {
			return nil
		}
		t.consume(w)
	}
}
