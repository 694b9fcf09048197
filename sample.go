package chat2doc

// SampleFileName is the download name of SamplePayload.
const SampleFileName = "sample_conversation.json"

// samplePayload is a minimal two-message export exercising the metadata
// table, the model line and the timing line.
const samplePayload = `{
  "conv": {
    "id": "sample-id",
    "name": "esempio",
    "lastModified": 1771702156904,
    "currNode": "sample-node"
  },
  "messages": [
    {
      "convId": "sample-id",
      "role": "user",
      "content": "Ciao! Questo è un messaggio di esempio.",
      "type": "text",
      "timestamp": 1771702156956
    },
    {
      "convId": "sample-id",
      "role": "assistant",
      "content": "Ciao! Sono un assistente virtuale. Come posso aiutarti?",
      "type": "text",
      "timestamp": 1771702156981,
      "model": "Modello-Esempio",
      "timings": {
        "prompt_n": 10,
        "prompt_ms": 50.5,
        "predicted_n": 20,
        "predicted_ms": 100.2
      }
    }
  ]
}
`

// SamplePayload returns an example export accepted by Convert.
func SamplePayload() []byte {
	return []byte(samplePayload)
}
