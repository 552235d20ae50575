// Package graph holds the calculator's model: the registry of plotted
// functions, the viewport that maps coordinates to window pixels, and the
// per-frame scene built from both.
//
// Nothing here touches a window or a GPU. A Scene is a plain display list
// in coordinate space that the OpenGL front end and the PNG exporter both
// draw.
package graph
