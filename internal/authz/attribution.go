package authz

// ResponderName is the name shown on a response: "title - name" for
// officials, the user's own name otherwise, "Anonymous" when nothing is known.
func ResponderName(id *Identity) string {
	if id.IsOfficial() {
		name := id.Name
		if name == "" {
			name = "Official"
		}
		return id.Official.Title + " - " + name
	}
	if id != nil && id.Name != "" {
		return id.Name
	}
	return "Anonymous"
}
