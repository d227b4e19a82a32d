package directive

import (
	"bufio"
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/jasonish/go-idsrules"
)

// ParseIssue is a line the rule reader could not make sense of
type ParseIssue struct {
	File    string `json:"file" yaml:"file"`
	Message string `json:"message" yaml:"message"`
}

// Declaration is one active directive carrying a sid
type Declaration struct {
	SID  uint64
	Line string
}

// Scan is the result of reading one rule file
type Scan struct {
	Directives   int
	SIDs         []uint64
	Declarations []Declaration
	Issues       []ParseIssue
}

// ScanRules reads every active directive in data. Commented-out directives
// are ignored. Lines that fail to parse are reported as issues and skipped;
// the reader has already consumed them, so scanning resumes on the next line.
func ScanRules(file string, data []byte) Scan {
	scan := Scan{}
	active, err := activeLines(data)
	if err != nil {
		scan.Issues = append(scan.Issues, ParseIssue{File: file, Message: err.Error()})
	}
	reader := idsrules.NewRuleReader(bytes.NewReader(active))

	for {
		rule, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			scan.Issues = append(scan.Issues, ParseIssue{File: file, Message: err.Error()})
			continue
		}

		scan.Directives++
		if rule.Sid != 0 {
			scan.SIDs = append(scan.SIDs, rule.Sid)
			scan.Declarations = append(scan.Declarations, Declaration{
				SID:  rule.Sid,
				Line: strings.TrimSpace(rule.Raw),
			})
		}
	}

	return scan
}

// activeLines drops comment lines so disabled directives do not count.
// Lines are read whole whatever their length.
func activeLines(data []byte) ([]byte, error) {
	var out bytes.Buffer
	reader := bufio.NewReader(bytes.NewReader(data))
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			trimmed := bytes.TrimRight(line, "\r\n")
			if !bytes.HasPrefix(bytes.TrimSpace(trimmed), []byte("#")) {
				out.Write(trimmed)
				out.WriteByte('\n')
			}
		}
		if err == io.EOF {
			return out.Bytes(), nil
		}
		if err != nil {
			return out.Bytes(), err
		}
	}
}

// SIDConflict is a sid claimed by directives that differ
type SIDConflict struct {
	SID   uint64   `json:"sid" yaml:"sid"`
	Files []string `json:"files" yaml:"files"`
}

type declaredIn struct {
	file string
	line string
}

// SIDIndex records which files declare each sid, and with what directive
type SIDIndex map[uint64][]declaredIn

// Add records every sid declared in scan under file
func (idx SIDIndex) Add(file string, scan Scan) {
	for _, d := range scan.Declarations {
		idx[d.SID] = append(idx[d.SID], declaredIn{file: file, line: d.Line})
	}
}

// Conflicts returns every sid declared by more than one distinct directive,
// ordered by sid. Byte-identical repeats of a directive, such as the default
// directive seeding every new file, are not conflicts.
func (idx SIDIndex) Conflicts() []SIDConflict {
	var conflicts []SIDConflict
	for sid, decls := range idx {
		distinct := map[string]bool{}
		files := make([]string, 0, len(decls))
		for _, d := range decls {
			distinct[d.line] = true
			files = append(files, d.file)
		}
		if len(distinct) < 2 {
			continue
		}
		sort.Strings(files)
		conflicts = append(conflicts, SIDConflict{SID: sid, Files: files})
	}
	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].SID < conflicts[j].SID })
	return conflicts
}

// ConflictError builds the validation error reported for conflicts
func ConflictError(conflicts []SIDConflict) error {
	if len(conflicts) == 0 {
		return nil
	}
	first := conflicts[0]
	return errors.Newf(errors.ErrSIDConflict, "sid %d is declared by %s",
		first.SID, strings.Join(first.Files, ", ")).
		WithDetail("conflicts", conflicts)
}
