package codec

// UTF8ToUTF8 is the identity converter used when source and destination
// encodings are both UTF-8. It copies min(len(dst), len(src)) bytes
// unchanged; validation is the producer's responsibility.
func UTF8ToUTF8(dst, src []byte) (written, read int, err error) {
	n := copy(dst, src)

	return n, n, nil
}
