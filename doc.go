/*
go-cpn implements the data plumbing around contour proposal models, which
detect object instances as closed contours encoded with a truncated Fourier
series instead of bounding boxes or pixel masks.

The root package holds the shared types (label maps, contours, dense model
outputs) and the validated configuration. Training time target generation
lives in the targets package, the Fourier encoding and contour sampling in
the fourier package, and inference time proposal decoding, non-maximum
suppression and iterative contour refinement in the postprocess package.
*/
package cpn
