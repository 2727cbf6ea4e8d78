// Package filter implements the pixel filters shared by the nodes:
// Gaussian kernels, separable blur with reflect padding and a few blend
// operators.
//
// Blur uses mirror ("reflect") edge handling: index -1 maps to 1, never to
// 0, so borders keep their brightness instead of fading toward black as
// they would with zero padding.
package filter
