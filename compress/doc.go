// Package compress provides compression and decompression codecs for the
// outer envelope that wraps a complete vpack payload.
//
// These codecs never see or alter the vpack wire format itself — they
// operate on the already-encoded byte slice that codec.Encode produced,
// as an optional second stage the envelope package applies on top.
//
// # Supported Algorithms
//
// **NoOp** (format.CompressionNone) — returns data unchanged. Use when the
// payload is small or already incompressible.
//
// **Zstandard** (format.CompressionZstd) — best compression ratio, moderate
// speed. Good default for archival or network transmission where bandwidth
// matters more than latency.
//
// **S2** (format.CompressionS2) — a Snappy-family codec tuned for speed;
// balanced compression and throughput for latency-sensitive paths.
//
// **LZ4** (format.CompressionLZ4) — fastest decompression, moderate
// compression ratio. Good for read-heavy workloads.
//
// # Thread Safety
//
// Every Codec value here is stateless and safe for concurrent use; each
// Compress/Decompress call constructs and discards its own encoder or
// decoder.
package compress
