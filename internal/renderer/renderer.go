package renderer

var Debug bool = false           // draw wireframes
var DepthTestEnabled bool = true // disable only to inspect overdraw
