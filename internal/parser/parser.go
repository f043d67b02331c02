// Package parser reads flashcards written as markdown Q:/A: blocks.
//
//	Q: What is Go?
//	A: A statically typed language.
//	It was designed at Google.
//	---
//	Q: Next question
//	A: Next answer
//
// A new "Q:" line or a "---" separator ends the current card. Lines after a
// prefix line belong to that block until the next prefix.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	separator      = "---"
)

type block int

const (
	seeking block = iota
	inQuestion
	inAnswer
)

// Entry is a raw question/answer pair as written in the file. Text is not
// trimmed or validated here.
type Entry struct {
	Question string
	Answer   string
	Line     int // line where the question starts
}

// ParseFile reads a file from the given path and extracts all entries.
func ParseFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads from an io.Reader and extracts all entries that have a question.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var (
		entries []Entry
		current Entry
		lines   []string
		state   = seeking
		lineNo  int
	)

	flushBlock := func() {
		content := strings.Join(lines, "\n")
		switch state {
		case inQuestion:
			current.Question = content
		case inAnswer:
			current.Answer = content
		}
		lines = nil
	}
	finishEntry := func() {
		flushBlock()
		if current.Question != "" {
			entries = append(entries, current)
		}
		current = Entry{}
		state = seeking
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch {
		case line == separator:
			finishEntry()
		case strings.HasPrefix(line, questionPrefix):
			finishEntry()
			state = inQuestion
			current.Line = lineNo
			lines = append(lines, stripPrefix(line, questionPrefix))
		case strings.HasPrefix(line, answerPrefix) && state != seeking:
			flushBlock()
			state = inAnswer
			lines = append(lines, stripPrefix(line, answerPrefix))
		case state != seeking:
			lines = append(lines, line)
		}
	}
	finishEntry()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func stripPrefix(line, prefix string) string {
	return strings.TrimPrefix(line[len(prefix):], " ")
}
