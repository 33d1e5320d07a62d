package codec

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gavlooth/rcseq/pkg/container"
)

// frame is one entry of the decoder's stack-of-lists: the external handle
// currently being populated. Grounded on
// original_source/src/trotLib/trotStack.c's nesting stack; kept here as a
// plain Go slice rather than a second container-backed stack type.
type frame struct {
	handle *container.Handle
}

// Decode parses canonical textual form into a live container and returns a
// fresh external handle to the outermost list.
//
// This build accepts exactly one ASCII space (U+0020) between tokens and
// rejects any other whitespace (tabs, newlines, repeated spaces, non-ASCII
// space) with ErrDecode -- the stricter of the two historical decoder
// variants, chosen because it matches what the canonical encoder always
// produces.
func Decode(s *container.Store, input string) (*container.Handle, error) {
	lx := newLexer(input)

	tok, err := lx.next()
	if err != nil {
		return nil, decodeErr(err)
	}
	if tok.kind != tokLBracket {
		return nil, decodeErr(errors.New("outermost value must be a list"))
	}

	root, err := s.Init()
	if err != nil {
		return nil, err
	}
	stack := []frame{{handle: root}}

	for {
		tok, err = lx.next()
		if err != nil {
			freeStack(s, stack, root)
			return nil, decodeErr(err)
		}

		top := &stack[len(stack)-1]

		switch tok.kind {
		case tokEOF:
			freeStack(s, stack, root)
			return nil, decodeErr(errors.New("unterminated list"))

		case tokLBracket:
			child, err := s.Init()
			if err != nil {
				freeStack(s, stack, root)
				return nil, err
			}
			if err := s.AppendList(top.handle, child); err != nil {
				_ = s.Free(child)
				freeStack(s, stack, root)
				return nil, err
			}
			stack = append(stack, frame{handle: child})

		case tokRBracket:
			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if closed.handle != root {
				_ = s.Free(closed.handle)
			}
			if len(stack) == 0 {
				// Root closed: everything after this must be ASCII spaces.
				if lx.pos < len(lx.input) {
					rest := strings.TrimLeft(string(lx.input[lx.pos:]), " ")
					if rest != "" {
						return nil, decodeErr(errors.New("trailing garbage after outermost list"))
					}
				}
				return root, nil
			}

		case tokTypeTag:
			v, err := strconv.ParseInt(tok.text, 10, 64)
			if err != nil {
				freeStack(s, stack, root)
				return nil, decodeErr(errors.Wrap(err, "bad type tag"))
			}
			if err := s.SetTypeTag(top.handle, v); err != nil {
				freeStack(s, stack, root)
				return nil, err
			}

		case tokUserTag:
			v, err := strconv.ParseInt(tok.text, 10, 64)
			if err != nil {
				freeStack(s, stack, root)
				return nil, decodeErr(errors.Wrap(err, "bad user tag"))
			}
			if err := s.SetUserTag(top.handle, v); err != nil {
				freeStack(s, stack, root)
				return nil, err
			}

		case tokBackref:
			path, err := parseBackrefPath(tok.text)
			if err != nil {
				freeStack(s, stack, root)
				return nil, decodeErr(err)
			}
			resolved, err := resolveBackref(s, root, path)
			if err != nil {
				freeStack(s, stack, root)
				return nil, err
			}
			if err := s.AppendList(top.handle, resolved); err != nil {
				_ = s.Free(resolved)
				freeStack(s, stack, root)
				return nil, err
			}
			_ = s.Free(resolved)

		case tokNumber:
			v, err := parseInt32Literal(tok.text)
			if err != nil {
				freeStack(s, stack, root)
				return nil, decodeErr(err)
			}
			if err := s.AppendInt(top.handle, v); err != nil {
				freeStack(s, stack, root)
				return nil, err
			}
		}
	}
}

// freeStack releases the external handle of every still-open frame after a
// decode failure, then root's own external handle (root is never handed to
// the caller on failure), so the collector reclaims the partial structure.
func freeStack(s *container.Store, stack []frame, root *container.Handle) {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].handle != root {
			_ = s.Free(stack[i].handle)
		}
	}
	_ = s.Free(root)
}

// parseBackrefPath splits "@"'s trailing text (e.g. ".1.2") into its
// positive-int path components. An empty text means the bare "@".
func parseBackrefPath(text string) ([]int, error) {
	if text == "" {
		return nil, nil
	}
	if text[0] != '.' {
		return nil, errors.New("bad backref path")
	}
	parts := strings.Split(text[1:], ".")
	path := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return nil, errors.New("bad backref path")
		}
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return nil, errors.New("bad backref path component")
		}
		path = append(path, n)
	}
	return path, nil
}

// resolveBackref walks path from root (the outermost decoded list),
// requiring every intermediate child to be a List, and returns a fresh
// external handle to the resolved container.
func resolveBackref(s *container.Store, root *container.Handle, path []int) (*container.Handle, error) {
	cur, err := s.Twin(root)
	if err != nil {
		return nil, err
	}
	for _, idx := range path {
		k, err := s.Kind(cur, idx)
		if err != nil {
			_ = s.Free(cur)
			return nil, decodeErr(errors.Wrap(err, "bad backref path"))
		}
		if k != container.List {
			_ = s.Free(cur)
			return nil, decodeErr(errors.New("backref path descends into a non-list"))
		}
		next, err := s.GetList(cur, idx)
		if err != nil {
			_ = s.Free(cur)
			return nil, err
		}
		_ = s.Free(cur)
		cur = next
	}
	return cur, nil
}

// parseInt32Literal validates and parses a decimal integer literal per the
// grammar's "no leading zeros except 0 itself" rule. Range overflow is
// delegated to strconv.ParseInt's own bitSize=32 check, which supersedes
// the original C tokenizer's hand-rolled string-length comparison against
// the known min/max literal lengths (needed there only because strtol
// offers no convenient 32-bit overflow signal).
func parseInt32Literal(text string) (int32, error) {
	body := text
	if strings.HasPrefix(body, "-") {
		body = body[1:]
	}
	if body == "" {
		return 0, errors.New("empty numeric literal")
	}
	if len(body) > 1 && body[0] == '0' {
		return 0, errors.New("leading zero in numeric literal")
	}
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, errors.Wrap(err, "numeric literal out of int32 range")
	}
	return int32(v), nil
}

func decodeErr(cause error) error {
	return &decodeError{cause: cause}
}

type decodeError struct {
	cause error
}

func (e *decodeError) Error() string { return "decode: " + e.cause.Error() }
func (e *decodeError) Unwrap() error { return e.cause }

// Code reports container.ErrDecode for any error Decode returns.
func Code(err error) container.ErrCode {
	if err == nil {
		return container.Success
	}
	var de *decodeError
	if errors.As(err, &de) {
		return container.ErrDecode
	}
	return container.Code(err)
}
