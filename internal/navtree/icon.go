package navtree

// ExpandIcon builds the arrow drawn inside every toggle label. The svg symbol
// itself ships with the theme's sprite sheet.
func ExpandIcon(doc Document) Node {
	icon := doc.NewElement("i", Attribute{"class", "icon"})
	svg := doc.NewElement("svg")
	svg.AppendChild(doc.NewElement("use", Attribute{"href", "#svg-arrow-right"}))
	icon.AppendChild(svg)
	return icon
}
