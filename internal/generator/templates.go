package generator

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"
)

//go:embed templates/src
var templateFS embed.FS

const embeddedRoot = "templates/src"

// Action is what the merger did with a single template file.
type Action string

const (
	ActionCopied  Action = "copied"
	ActionSkipped Action = "skipped"
	ActionFailed  Action = "failed"
)

// FileOutcome records the merge decision for one file. Path is relative to
// the template root.
type FileOutcome struct {
	Path   string
	Action Action
	Err    error
}

// MergeReport lists per-file outcomes of a template merge in walk order.
type MergeReport struct {
	// Source names the template tree that was merged.
	Source string
	// SourceMissing is set when a template directory was configured but
	// does not exist. Nothing is merged in that case.
	SourceMissing bool
	Files         []FileOutcome
}

// Copied returns the relative paths that were written.
func (r *MergeReport) Copied() []string {
	return r.paths(ActionCopied)
}

// Skipped returns the relative paths that were already up to date.
func (r *MergeReport) Skipped() []string {
	return r.paths(ActionSkipped)
}

// Failed returns the outcomes of files that could not be copied.
func (r *MergeReport) Failed() []FileOutcome {
	var out []FileOutcome
	for _, f := range r.Files {
		if f.Action == ActionFailed {
			out = append(out, f)
		}
	}
	return out
}

func (r *MergeReport) paths(a Action) []string {
	var out []string
	for _, f := range r.Files {
		if f.Action == a {
			out = append(out, f.Path)
		}
	}
	return out
}

// TemplateSource is a template tree merged into <project>/src.
type TemplateSource struct {
	// FS is rooted at the template directory.
	FS fs.FS
	// Name identifies the source in reports and errors.
	Name string
	// ModTime stands in for files whose FileInfo has a zero modification
	// time, which is every embedded file.
	ModTime time.Time
	// Perm, when non-zero, replaces the source mode of copied files.
	Perm fs.FileMode
}

// BuiltinTemplatesName is the Name of the embedded template source.
const BuiltinTemplatesName = "built-in templates"

// BuiltinTemplates returns the template tree compiled into the binary.
// Embedded files carry no mtime, so the modification time of the running
// executable is used for them. Copies are written 0644 because embedded
// files report 0444.
func BuiltinTemplates() TemplateSource {
	sub, err := fs.Sub(templateFS, embeddedRoot)
	if err != nil {
		panic(fmt.Sprintf("embedded templates: %v", err))
	}
	return TemplateSource{
		FS:      sub,
		Name:    BuiltinTemplatesName,
		ModTime: executableModTime(),
		Perm:    0644,
	}
}

// DirTemplates returns a source reading the template tree at dir.
func DirTemplates(dir string) TemplateSource {
	return TemplateSource{FS: os.DirFS(dir), Name: dir}
}

func executableModTime() time.Time {
	exe, err := os.Executable()
	if err != nil {
		return time.Time{}
	}
	info, err := os.Stat(exe)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// MergeTemplates reconciles the template directory src into dst. An empty
// src merges the built-in templates. A src that does not exist is a no-op
// reported through SourceMissing.
func MergeTemplates(src, dst string) (*MergeReport, error) {
	if src == "" {
		return MergeSource(BuiltinTemplates(), dst)
	}

	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return &MergeReport{Source: src, SourceMissing: true}, nil
	}
	if err != nil {
		return &MergeReport{Source: src}, TemplateCopyFailed(fmt.Sprintf("reading template directory %s", src), err)
	}
	if !info.IsDir() {
		return &MergeReport{Source: src}, TemplateCopyFailed(fmt.Sprintf("template source %s is not a directory", src), nil)
	}
	return MergeSource(DirTemplates(src), dst)
}

// MergeSource reconciles src into dst. A file is copied when the
// destination is missing, when the sizes differ, when the source is
// strictly newer, or when either side's metadata cannot be read. Per-file
// copy failures are recorded in the report; directory-level failures abort
// with TemplateCopyFailed.
func MergeSource(src TemplateSource, dst string) (*MergeReport, error) {
	report := &MergeReport{Source: src.Name}
	if err := src.mergeDir(".", dst, report); err != nil {
		return report, TemplateCopyFailed(err.Error(), err)
	}
	return report, nil
}

func (s TemplateSource) mergeDir(dir, dst string, report *MergeReport) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	entries, err := fs.ReadDir(s.FS, dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path.Join(s.Name, dir), err)
	}

	for _, entry := range entries {
		name := path.Join(dir, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		relPath := filepath.FromSlash(name)

		if entry.IsDir() {
			if err := s.mergeDir(name, dstPath, report); err != nil {
				return err
			}
			continue
		}

		if !s.needsCopy(name, dstPath) {
			report.Files = append(report.Files, FileOutcome{Path: relPath, Action: ActionSkipped})
			continue
		}

		if err := s.copyFile(name, dstPath); err != nil {
			report.Files = append(report.Files, FileOutcome{Path: relPath, Action: ActionFailed, Err: err})
			continue
		}
		report.Files = append(report.Files, FileOutcome{Path: relPath, Action: ActionCopied})
	}

	return nil
}

// needsCopy applies the freshness rule: size differs OR source mtime is
// strictly later. Unreadable metadata on either side means copy.
func (s TemplateSource) needsCopy(name, dst string) bool {
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return true
	}
	srcInfo, err := fs.Stat(s.FS, name)
	if err != nil {
		return true
	}
	return srcInfo.Size() != dstInfo.Size() || s.modTime(srcInfo).After(dstInfo.ModTime())
}

func (s TemplateSource) modTime(info fs.FileInfo) time.Time {
	if mt := info.ModTime(); !mt.IsZero() {
		return mt
	}
	return s.ModTime
}

// copyFile copies a single file from the source tree to dst, preserving
// permissions unless Perm overrides them.
func (s TemplateSource) copyFile(name, dst string) error {
	in, err := s.FS.Open(name)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	perm := info.Mode().Perm()
	if s.Perm != 0 {
		perm = s.Perm
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
