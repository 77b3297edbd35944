package extract

import (
	"fmt"
	"image"
	"log"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// amountWhitelist restricts Tesseract to the characters that can occur in
// receipt amounts and their immediate context.
const amountWhitelist = "0123456789$€.,:()/- "

// ImageText runs the base OCR pass over an image on disk: grayscale,
// contrast, sharpen, upscale small captures, global binarization, then
// Tesseract with an amount-oriented whitelist.
func ImageText(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	gray = imaging.Sharpen(gray, 0.7)
	if gray.Bounds().Dy() < 900 {
		gray = imaging.Resize(gray, 0, 1300, imaging.Lanczos)
	}
	return runTesseract(binarize(gray, 210), path)
}

// ImageTextEnhanced runs the escalation pass: same pipeline plus a mean
// adaptive threshold and a light dilation, which recovers thin or unevenly
// lit digits that the global threshold loses. Slower, so callers only reach
// for it when the base pass found nothing usable.
func ImageTextEnhanced(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	if gray.Bounds().Dy() < 900 {
		gray = imaging.Resize(gray, 0, 1300, imaging.Lanczos)
	}
	adv := adaptiveThreshold(gray, 15, 7)
	adv = dilate(adv, 1)
	return runTesseract(adv, path)
}

// runTesseract saves the preprocessed image next to a temp path and OCRs it.
// When the temp file cannot be created the original image is used as-is.
func runTesseract(img image.Image, fallback string) (string, error) {
	target := fallback
	if tmpFile, err := os.CreateTemp("", "extract-*.png"); err == nil {
		target = tmpFile.Name()
		_ = tmpFile.Close()
		if err := imaging.Save(img, target); err != nil {
			target = fallback
		}
		defer os.Remove(tmpFile.Name())
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("spa")
	_ = client.SetWhitelist(amountWhitelist)
	client.SetImage(target)
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr error: %w", err)
	}
	text = normalizeText(text)
	log.Printf("OCR %s snippet=%q", fallback, snippet(text, 180))
	return text, nil
}
