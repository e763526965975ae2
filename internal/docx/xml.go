// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import "encoding/xml"

const nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// document is word/document.xml. Only the WordprocessingML elements the
// renderer emits are modelled; field order follows the schema sequence.
type document struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	Body    body     `xml:"w:body"`
}

type body struct {
	Paragraphs []paragraph `xml:"w:p"`
	SectPr     sectPr      `xml:"w:sectPr"`
}

type paragraph struct {
	Props *paragraphProps `xml:"w:pPr,omitempty"`
	Runs  []run           `xml:"w:r"`
}

type paragraphProps struct {
	Style   *val     `xml:"w:pStyle,omitempty"`
	NumPr   *numPr   `xml:"w:numPr,omitempty"`
	Tabs    *tabs    `xml:"w:tabs,omitempty"`
	Spacing *spacing `xml:"w:spacing,omitempty"`
	Ind     *ind     `xml:"w:ind,omitempty"`
	Jc      *val     `xml:"w:jc,omitempty"`
}

type run struct {
	Props *runProps `xml:"w:rPr,omitempty"`
	Break *empty    `xml:"w:br,omitempty"`
	Tab   *empty    `xml:"w:tab,omitempty"`
	Text  *text     `xml:"w:t,omitempty"`
}

type runProps struct {
	Bold   *empty `xml:"w:b,omitempty"`
	Size   *val   `xml:"w:sz,omitempty"`
	SizeCs *val   `xml:"w:szCs,omitempty"`
}

type text struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type empty struct{}

type val struct {
	Val string `xml:"w:val,attr"`
}

type numPr struct {
	Ilvl  val `xml:"w:ilvl"`
	NumID val `xml:"w:numId"`
}

type tabs struct {
	Tabs []tab `xml:"w:tab"`
}

type tab struct {
	Val string `xml:"w:val,attr"`
	Pos int    `xml:"w:pos,attr"`
}

type spacing struct {
	Before int `xml:"w:before,attr"`
	After  int `xml:"w:after,attr"`
}

type ind struct {
	Left    int `xml:"w:left,attr"`
	Hanging int `xml:"w:hanging,attr"`
}

type sectPr struct {
	PgSz  pgSz  `xml:"w:pgSz"`
	PgMar pgMar `xml:"w:pgMar"`
}

type pgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type pgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/><Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/></Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/></Relationships>`

// stylesXMLFormat takes the font name and the size in half-points.
const stylesXMLFormat = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:cs="%[1]s" w:eastAsia="%[1]s"/><w:sz w:val="%[2]d"/><w:szCs w:val="%[2]d"/></w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="0" w:line="276" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults><w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style><w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/><w:qFormat/></w:style></w:styles>`

const numberingXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="singleLevel"/><w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="•"/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="720" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum><w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num></w:numbering>`
