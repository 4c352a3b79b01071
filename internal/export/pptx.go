package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

// MaxBulletsPerSlide caps the body of a section slide.
const MaxBulletsPerSlide = 6

// SlidesRenderer writes a .pptx: a title slide, then one slide per section
// with its title and up to MaxBulletsPerSlide bullets.
type SlidesRenderer struct{}

type slide struct {
	title    string
	subtitle string
	bullets  []string
}

func (SlidesRenderer) Render(w io.Writer, p *domain.Project, _ time.Time) error {
	slides := []slide{{title: p.Title, subtitle: p.Topic}}
	for _, s := range sortedSections(p) {
		slides = append(slides, slide{title: s.Title, bullets: SlideBullets(s.Content)})
	}

	overrides := []override{
		{"/ppt/presentation.xml", "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"},
		{"/ppt/slideMasters/slideMaster1.xml", "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"},
		{"/ppt/slideLayouts/slideLayout1.xml", "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"},
		{"/ppt/theme/theme1.xml", "application/vnd.openxmlformats-officedocument.theme+xml"},
	}
	presRels := []rel{
		{"rId1", "slideMaster", "slideMasters/slideMaster1.xml"},
		{"rId2", "theme", "theme/theme1.xml"},
	}
	var slideParts []part
	for i, s := range slides {
		n := i + 1
		overrides = append(overrides, override{
			fmt.Sprintf("/ppt/slides/slide%d.xml", n),
			"application/vnd.openxmlformats-officedocument.presentationml.slide+xml",
		})
		presRels = append(presRels, rel{fmt.Sprintf("rId%d", n+2), "slide", fmt.Sprintf("slides/slide%d.xml", n)})
		slideParts = append(slideParts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(s, i == 0)},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), relsXML([]rel{{"rId1", "slideLayout", "../slideLayouts/slideLayout1.xml"}})},
		)
	}

	parts := []part{
		{"[Content_Types].xml", contentTypesXML(overrides)},
		{"_rels/.rels", rootRels("ppt/presentation.xml")},
		{"ppt/presentation.xml", presentationXML(len(slides))},
		{"ppt/_rels/presentation.xml.rels", relsXML(presRels)},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", relsXML([]rel{
			{"rId1", "slideLayout", "../slideLayouts/slideLayout1.xml"},
			{"rId2", "theme", "../theme/theme1.xml"},
		})},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", relsXML([]rel{{"rId1", "slideMaster", "../slideMasters/slideMaster1.xml"}})},
		{"ppt/theme/theme1.xml", themeXML},
	}
	return writePackage(w, append(parts, slideParts...))
}

// SlideBullets flattens section content into at most MaxBulletsPerSlide
// lines of text.
func SlideBullets(content string) []string {
	var out []string
	for _, b := range ParseBlocks(content) {
		if len(out) == MaxBulletsPerSlide {
			break
		}
		out = append(out, b.Text)
	}
	return out
}

const pNS = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

const groupProps = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

// 4:3 slide, EMU.
const (
	slideWidth  = 9144000
	slideHeight = 6858000
)

func presentationXML(count int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:presentation ` + pNS + ` saveSubsetFonts="1">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 0; i < count; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+3)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d" type="screen4x3"/>`, slideWidth, slideHeight)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func slideXML(s slide, cover bool) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld ` + pNS + `><p:cSld><p:spTree>`)
	b.WriteString(groupProps)

	if cover {
		textBox(&b, 2, "Title", 457200, 2130425, 8229600, 1470025, []string{s.title}, 4400, true, false)
		if s.subtitle != "" {
			textBox(&b, 3, "Subtitle", 1371600, 3886200, 6400800, 1752600, []string{s.subtitle}, 2400, false, false)
		}
	} else {
		textBox(&b, 2, "Title", 457200, 274638, 8229600, 1143000, []string{s.title}, 3600, true, false)
		if len(s.bullets) > 0 {
			textBox(&b, 3, "Content", 457200, 1600200, 8229600, 4525963, s.bullets, 2000, false, true)
		}
	}

	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return b.String()
}

func textBox(b *strings.Builder, id int, name string, x, y, cx, cy int, lines []string, size int, bold, bullets bool) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, name)
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`, x, y, cx, cy)
	b.WriteString(`<p:txBody><a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
	boldAttr := ""
	if bold {
		boldAttr = ` b="1"`
	}
	for _, line := range lines {
		b.WriteString(`<a:p>`)
		if bullets {
			b.WriteString(`<a:pPr marL="342900" indent="-342900"><a:buFont typeface="Arial"/><a:buChar char="•"/></a:pPr>`)
		}
		fmt.Fprintf(b, `<a:r><a:rPr lang="en-US" sz="%d"%s dirty="0"/><a:t>%s</a:t></a:r></a:p>`, size, boldAttr, esc(line))
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

const clrMap = `<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" ` +
	`accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`

var slideMasterXML = xmlHeader + `<p:sldMaster ` + pNS + `>` +
	`<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree>` + groupProps + `</p:spTree></p:cSld>` +
	clrMap +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`<p:txStyles><p:titleStyle/><p:bodyStyle/><p:otherStyle/></p:txStyles>` +
	`</p:sldMaster>`

var slideLayoutXML = xmlHeader + `<p:sldLayout ` + pNS + ` type="blank" preserve="1">` +
	`<p:cSld name="Blank"><p:spTree>` + groupProps + `</p:spTree></p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`

func schemeColor(name, hex string) string {
	return `<a:` + name + `><a:srgbClr val="` + hex + `"/></a:` + name + `>`
}

func repeat(s string, n int) string { return strings.Repeat(s, n) }

var themeXML = xmlHeader + `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office Theme"><a:themeElements>` +
	`<a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1><a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	schemeColor("dk2", "1F497D") + schemeColor("lt2", "EEECE1") +
	schemeColor("accent1", "4F81BD") + schemeColor("accent2", "C0504D") + schemeColor("accent3", "9BBB59") +
	schemeColor("accent4", "8064A2") + schemeColor("accent5", "4BACC6") + schemeColor("accent6", "F79646") +
	schemeColor("hlink", "0000FF") + schemeColor("folHlink", "800080") +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office">` +
	`<a:majorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Office">` +
	`<a:fillStyleLst>` + repeat(`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>`, 3) + `</a:fillStyleLst>` +
	`<a:lnStyleLst>` + repeat(`<a:ln w="9525"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>`, 3) + `</a:lnStyleLst>` +
	`<a:effectStyleLst>` + repeat(`<a:effectStyle><a:effectLst/></a:effectStyle>`, 3) + `</a:effectStyleLst>` +
	`<a:bgFillStyleLst>` + repeat(`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>`, 3) + `</a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements><a:objectDefaults/><a:extraClrSchemeLst/></a:theme>`
