// Package negra reads treebanks in the NEGRA export format (versions 3 and 4).
//
// A file is a sequence of sentences, each one enclosed in #BOS/#EOS lines:
//
//	#FORMAT 4
//	#BOS 1 2 1070544990 0
//	Der	der	ART	nsm	-	500
//	Mann	Mann	NN	nsm	HD	500
//	#500	--	NX	--	ON	0	%% R=coreferential.0:502
//	#EOS 1
//
// Terminal lines come first, in surface order. Nonterminal lines start with
// #NNN where NNN >= 500. Everything after %% is the node comment.
package negra

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	sent "github.com/revelaction/negracoref/sentence"
)

const (
	DefaultFormat = 4

	// first id of a nonterminal node
	firstNonterminal = 500

	maxLineSize = 1024 * 1024
)

// Reader reads sentences from a NEGRA export stream. It never seeks back.
type Reader struct {
	sc     *bufio.Scanner
	line   int
	format int

	// the #BOT table being skipped, if any
	table string
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Reader{sc: sc, format: DefaultFormat}
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

// Format returns the export format version in effect.
func (r *Reader) Format() int {
	return r.format
}

// Next returns the next sentence of the stream, or io.EOF when there are no
// more sentences.
func (r *Reader) Next() (*sent.Sentence, error) {
	var s *sent.Sentence

	for r.sc.Scan() {
		r.line++
		line := strings.TrimRight(r.sc.Text(), "\r")

		if s == nil {
			var err error
			s, err = r.outside(line)
			if err != nil {
				return nil, err
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}

		body, comment := splitComment(line)
		fields := strings.Fields(body)

		switch {
		case fields[0] == "#EOS":
			if err := r.end(s, fields); err != nil {
				return nil, err
			}
			return s, nil

		case fields[0] == "#BOS":
			return nil, r.errorf(s.Id, "#BOS inside sentence %d, missing #EOS", s.Id)

		case isNonterminal(fields[0]):
			n, err := r.nonterminal(s, fields, comment)
			if err != nil {
				return nil, err
			}
			s.Nonterminals = append(s.Nonterminals, n)

		default:
			if len(s.Nonterminals) > 0 {
				return nil, r.errorf(s.Id, "terminal %q after nonterminal lines", fields[0])
			}
			n, err := r.terminal(s, fields, comment)
			if err != nil {
				return nil, err
			}
			s.Terminals = append(s.Terminals, n)
		}
	}

	if err := r.sc.Err(); err != nil {
		id := -1
		if s != nil {
			id = s.Id
		}
		return nil, &ParseError{Line: r.line + 1, Sentence: id, Msg: "unreadable line", Err: err}
	}

	if s != nil {
		return nil, r.errorf(s.Id, "end of input before #EOS %d", s.Id)
	}

	return nil, io.EOF
}

// outside handles a line found between sentences. It returns a new sentence
// for #BOS lines.
func (r *Reader) outside(line string) (*sent.Sentence, error) {
	trimmed := strings.TrimSpace(line)

	if r.table != "" {
		if strings.HasPrefix(trimmed, "#EOT") {
			r.table = ""
		}
		return nil, nil
	}

	if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
		return nil, nil
	}

	body, comment := splitComment(trimmed)
	fields := strings.Fields(body)

	switch fields[0] {
	case "#FORMAT":
		if len(fields) < 2 {
			return nil, r.errorf(-1, "#FORMAT without version")
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil || (v != 3 && v != 4) {
			return nil, r.errorf(-1, "unsupported format version %q", fields[1])
		}
		r.format = v
		return nil, nil

	case "#BOT":
		r.table = "?"
		if len(fields) > 1 {
			r.table = fields[1]
		}
		return nil, nil

	case "#BOS":
		if len(fields) < 2 {
			return nil, r.errorf(-1, "#BOS without sentence id")
		}
		id, err := r.atoi(-1, fields[1], "sentence id")
		if err != nil {
			return nil, err
		}
		return &sent.Sentence{
			Id:      id,
			Line:    r.line,
			Comment: comment,
			Format:  r.format,
		}, nil
	}

	return nil, r.errorf(-1, "unexpected line outside of a sentence: %q", fields[0])
}

func (r *Reader) end(s *sent.Sentence, fields []string) error {
	if len(fields) < 2 {
		return r.errorf(s.Id, "#EOS without sentence id")
	}
	id, err := r.atoi(s.Id, fields[1], "sentence id")
	if err != nil {
		return err
	}
	if id != s.Id {
		return r.errorf(s.Id, "#EOS %d closes #BOS %d", id, s.Id)
	}
	return nil
}

// columns returns the number of mandatory columns of a node line.
func (r *Reader) columns() int {
	if r.format == 3 {
		return 5
	}
	return 6
}

func (r *Reader) terminal(s *sent.Sentence, fields []string, comment string) (sent.Node, error) {
	if len(fields) < r.columns() {
		return sent.Node{}, r.errorf(s.Id, "terminal line has %d columns, expected at least %d", len(fields), r.columns())
	}

	n := sent.Node{
		Kind:    sent.Terminal,
		Index:   len(s.Terminals),
		Id:      sent.TerminalId(len(s.Terminals)),
		Form:    fields[0],
		Comment: comment,
		Line:    r.line,
	}

	rest := fields[1:]
	if r.format == 4 {
		n.Lemma = rest[0]
		rest = rest[1:]
	}
	n.Pos, n.Morph, n.Edge = rest[0], rest[1], rest[2]

	parent, err := r.atoi(s.Id, rest[3], "parent id")
	if err != nil {
		return sent.Node{}, err
	}
	n.Parent = parent

	return n, nil
}

func (r *Reader) nonterminal(s *sent.Sentence, fields []string, comment string) (sent.Node, error) {
	if len(fields) < r.columns() {
		return sent.Node{}, r.errorf(s.Id, "nonterminal line has %d columns, expected at least %d", len(fields), r.columns())
	}

	id, err := strconv.Atoi(fields[0][1:])
	if err != nil || id < firstNonterminal {
		return sent.Node{}, r.errorf(s.Id, "invalid node id %q", fields[0])
	}

	n := sent.Node{
		Kind:    sent.Nonterminal,
		Id:      id,
		Comment: comment,
		Line:    r.line,
	}

	rest := fields[1:]
	if r.format == 4 {
		// lemma column, always -- for nonterminals
		rest = rest[1:]
	}
	n.Category, n.Edge = rest[0], rest[2]

	parent, err := r.atoi(s.Id, rest[3], "parent id")
	if err != nil {
		return sent.Node{}, err
	}
	n.Parent = parent

	return n, nil
}

func (r *Reader) atoi(sentenceId int, field, what string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, &ParseError{Line: r.line, Sentence: sentenceId, Msg: "invalid " + what + " " + strconv.Quote(field), Err: err}
	}
	if v < 0 {
		return 0, r.errorf(sentenceId, "negative %s %d", what, v)
	}
	return v, nil
}

// splitComment separates the %% comment from the columns of a line. The
// comment marker must follow whitespace so that a %% word is not taken as a
// comment.
func splitComment(line string) (string, string) {
	for i := 1; i < len(line)-1; i++ {
		if line[i] == '%' && line[i+1] == '%' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return line[:i], strings.TrimSpace(line[i+2:])
		}
	}
	return line, ""
}

// isNonterminal reports whether field starts a nonterminal line: a '#'
// followed by a digit. A lone "#" is a terminal token.
func isNonterminal(field string) bool {
	return len(field) >= 2 && field[0] == '#' && field[1] >= '0' && field[1] <= '9'
}
