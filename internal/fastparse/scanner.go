// Copyright 2026 The Flowc Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fastparse is the CLI's parser collaborator (§6): a minimal
// hand-written scanner plus recursive-descent parser producing
// fast.Node values for a concrete textual rendering of §3's grammar.
// It is deliberately outside the core's scope — internal/compiler
// never imports it — and, grounded on cue/scanner and cue/parser's
// separation of concerns, keeps tokenizing and parsing in separate
// files even though neither does source-position-rich diagnostics
// (the core has no use for positions; Non-goal).
package fastparse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokFloat
	tokPunct // operators and delimiters, literal text in val
)

type token struct {
	kind tokenKind
	val  string
}

var keywords = map[string]bool{
	"node": true, "returns": true, "local": true, "when": true, "whenot": true,
	"if": true, "then": true, "else": true, "fby": true, "pre": true,
	"current": true, "merge": true, "reset": true, "true": true, "false": true,
	"and": true, "or": true, "xor": true, "not": true, "mod": true,
	"int": true, "real": true, "bool": true,
}

// scanner tokenizes src one token at a time via next.
type scanner struct {
	src []byte
	pos int
}

func newScanner(src []byte) *scanner { return &scanner{src: src} }

func (s *scanner) peekByte() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) skipSpaceAndComments() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			s.pos++
			continue
		}
		if c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
			continue
		}
		break
	}
}

var multiCharPuncts = []string{"->", "<=", ">=", "<>", "=>"}

func (s *scanner) next() (token, error) {
	s.skipSpaceAndComments()
	if s.pos >= len(s.src) {
		return token{kind: tokEOF}, nil
	}

	for _, p := range multiCharPuncts {
		if strings.HasPrefix(string(s.src[s.pos:]), p) {
			s.pos += len(p)
			return token{kind: tokPunct, val: p}, nil
		}
	}

	r, size := utf8.DecodeRune(s.src[s.pos:])
	switch {
	case unicode.IsLetter(r) || r == '_':
		start := s.pos
		for s.pos < len(s.src) {
			r, size := utf8.DecodeRune(s.src[s.pos:])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			s.pos += size
		}
		return token{kind: tokIdent, val: string(s.src[start:s.pos])}, nil

	case unicode.IsDigit(r):
		start := s.pos
		isFloat := false
		for s.pos < len(s.src) {
			c := s.src[s.pos]
			if c >= '0' && c <= '9' {
				s.pos++
				continue
			}
			if c == '.' && !isFloat && s.pos+1 < len(s.src) && s.src[s.pos+1] >= '0' && s.src[s.pos+1] <= '9' {
				isFloat = true
				s.pos++
				continue
			}
			break
		}
		if isFloat {
			return token{kind: tokFloat, val: string(s.src[start:s.pos])}, nil
		}
		return token{kind: tokInt, val: string(s.src[start:s.pos])}, nil

	case strings.ContainsRune("(),:;=+-*/<>{}", r):
		s.pos += size
		return token{kind: tokPunct, val: string(r)}, nil

	default:
		return token{}, fmt.Errorf("fastparse: unexpected character %q", r)
	}
}

func isKeyword(ident string) bool { return keywords[ident] }

func parseIntLit(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

func parseFloatLit(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}
