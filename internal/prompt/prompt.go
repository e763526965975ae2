// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt assembles the generation prompt from the fixed KKP
// instruction and the auditor's raw findings.
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
)

// Instruction tells the model to answer in the canonical marker grammar.
// The section headings must match the grammar's required_sections.
const Instruction = `Anda adalah Auditor Senior. Tugas Anda menyusun Kertas Kerja Pemeriksaan (KKP).
PENTING: Ikuti format di bawah ini dengan ketat. Jangan ubah urutan nomor header.
Gunakan "- " untuk poin-poin dan [align:left|center|right|justify]teks[/align] bila perataan khusus diperlukan.

[HEADER_START]
1. No. KKP: [Isi/Strip]
2. Nama Unit Kerja: [Isi]
3. Periode Pemeriksaan: [Isi]
4. INTERNAL AUDITOR: [Isi Nama Tim]
5. AUDITEE: [Isi Nama Auditee]
6. Materi Pemeriksaan: [Isi Judul]
[HEADER_END]

[CONTENT_START]
**URAIAN PEMERIKSAAN**
[PARAGRAPH]
[Isi uraian singkat di sini...]

**CATATAN PEMERIKSA**
[PARAGRAPH]
[Isi temuan detail di sini. Gunakan poin-poin jika perlu...]

**Atas Catatan Pemeriksa, Bahwa Kondisi Tersebut Belum Sesuai Dengan**
[PARAGRAPH]
[Sebutkan peraturan yang dilanggar...]

**Kondisi Tersebut Dapat Mengakibatkan**
[PARAGRAPH]
[Isi dampak...]

**Kondisi Tersebut Disebabkan Oleh**
[PARAGRAPH]
[Isi penyebab...]

**Analisis Governance, Risk dan Compliance**
[PARAGRAPH]
[Isi analisis...]

**REKOMENDASI**
[PARAGRAPH]
[Isi rekomendasi...]
[CONTENT_END]`

// promptTmpl joins the instruction and the findings.
var promptTmpl = template.Must(template.New("kkp").Parse(`{{.Instruction}}

DATA MENTAH USER:
{{.Findings}}`))

// Assembler builds prompts from a fixed instruction.
type Assembler struct {
	instruction string
}

// New returns an Assembler using the built-in Instruction.
func New() *Assembler {
	return &Assembler{instruction: Instruction}
}

// FromFile returns an Assembler whose instruction is read from path. An
// empty path returns New().
func FromFile(path string) (*Assembler, error) {
	if path == "" {
		return New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading instruction file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("instruction file %s is empty", path)
	}
	return &Assembler{instruction: text}, nil
}

// Assemble returns the prompt for findings. Findings are passed through
// verbatim; rejecting empty input is the caller's job.
func (a *Assembler) Assemble(findings string) (string, error) {
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, struct {
		Instruction string
		Findings    string
	}{a.instruction, findings})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}
