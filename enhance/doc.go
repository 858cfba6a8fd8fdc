// Package enhance implements the deterministic image-normalization stage
// that prepares device-display photographs for text recognition.
//
// The pipeline runs in a fixed order:
//
//  1. Luminance-weighted grayscale conversion.
//  2. Adaptive Gaussian thresholding (block 11×11, offset 2), robust to
//     uneven lighting across the display surface.
//  3. Morphological opening to remove thresholding speckle.
//  4. Contrast-limited adaptive histogram equalization (8×8 tiles, clip
//     limit 2.0) applied to the pre-threshold grayscale image.
//
// The recognizer consumes the CLAHE-enhanced grayscale image; the
// thresholded/opened image is kept only as a diagnostic artifact. Every
// stage is total and deterministic, preserves the input dimensions, and
// performs no I/O.
package enhance
