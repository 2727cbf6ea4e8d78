// Package tensor defines the interchange values passed between nodes:
// image batches, mask batches and audio clips.
//
// All sample values are float32. Images are stored row-major in
// (height, width, channel) order, one *Image per frame. A Batch guarantees
// that every frame shares height, width and channel count. Nodes treat
// batches they receive as read-only and return freshly allocated ones.
package tensor
