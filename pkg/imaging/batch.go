package imaging

// ProgressFunc reports batch progress after each completed file. percent is
// 0-100 and reaches exactly 100 on the final file.
type ProgressFunc func(percent, completed, total int)

// CompressAll runs Compress over files strictly in order, one at a time, so
// at most one decoded bitmap is held in memory. A file that fails to
// compress is passed through unchanged; the batch itself never fails.
func CompressAll(files []File, opts Options, onProgress ProgressFunc) []File {
	out := make([]File, 0, len(files))
	total := len(files)

	for i, f := range files {
		compressed, err := Compress(f, opts)
		if err != nil {
			compressed = f
		}
		out = append(out, compressed)

		if onProgress != nil {
			percent := (i + 1) * 100 / total
			onProgress(percent, i+1, total)
		}
	}

	return out
}
