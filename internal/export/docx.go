package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

// WordRenderer writes a .docx: title, topic, date, a table of contents and
// then every section as a heading followed by its paragraphs and bullets.
type WordRenderer struct{}

func (WordRenderer) Render(w io.Writer, p *domain.Project, at time.Time) error {
	sections := sortedSections(p)

	var body strings.Builder
	para(&body, "Title", p.Title)
	para(&body, "Subtitle", "Topic: "+p.Topic)
	para(&body, "", "Generated on "+at.Format("January 2, 2006"))
	if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
		para(&body, "", *p.Description)
	}

	if len(sections) > 0 {
		para(&body, "Heading1", "Table of Contents")
		for i, s := range sections {
			para(&body, "", fmt.Sprintf("%d. %s", i+1, s.Title))
		}
		pageBreak(&body)
	}

	for _, s := range sections {
		para(&body, "Heading1", s.Title)
		for _, b := range ParseBlocks(s.Content) {
			switch b.Kind {
			case BlockHeading:
				para(&body, "Heading2", b.Text)
			case BlockBullet:
				bullet(&body, b.Text)
			default:
				para(&body, "", b.Text)
			}
		}
	}

	return writePackage(w, []part{
		{"[Content_Types].xml", contentTypesXML([]override{
			{"/word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
			{"/word/styles.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"},
		})},
		{"_rels/.rels", rootRels("word/document.xml")},
		{"word/_rels/document.xml.rels", relsXML([]rel{{"rId1", "styles", "styles.xml"}})},
		{"word/document.xml", documentXML(body.String())},
		{"word/styles.xml", wordStyles},
	})
}

const wNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func documentXML(body string) string {
	return xmlHeader + `<w:document ` + wNS + `><w:body>` + body +
		`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>` +
		`</w:sectPr></w:body></w:document>`
}

func para(b *strings.Builder, style, text string) {
	b.WriteString(`<w:p>`)
	if style != "" {
		fmt.Fprintf(b, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, style)
	}
	run(b, text)
	b.WriteString(`</w:p>`)
}

func bullet(b *strings.Builder, text string) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="ListBullet"/><w:ind w:left="720" w:hanging="360"/></w:pPr>`)
	run(b, "• "+text)
	b.WriteString(`</w:p>`)
}

func run(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	b.WriteString(`<w:r><w:t xml:space="preserve">`)
	b.WriteString(esc(text))
	b.WriteString(`</w:t></w:r>`)
}

func pageBreak(b *strings.Builder) {
	b.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
}

var wordStyles = xmlHeader + `<w:styles ` + wNS + `>` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="259" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:rPr><w:sz w:val="56"/><w:b/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Subtitle"><w:name w:val="Subtitle"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:rPr><w:i/><w:color w:val="5A5A5A"/><w:sz w:val="28"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="360" w:after="120"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:color w:val="2F5496"/><w:sz w:val="32"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="80"/><w:outlineLvl w:val="1"/></w:pPr><w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/></w:style>` +
	`</w:styles>`
