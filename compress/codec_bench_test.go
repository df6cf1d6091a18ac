package compress

import "testing"

func BenchmarkCodec_RoundTrip(b *testing.B) {
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	for name, codec := range allCodecs() {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				compressed, err := codec.Compress(payload)
				if err != nil {
					b.Fatal(err)
				}

				if _, err := codec.Decompress(compressed); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
