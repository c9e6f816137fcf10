package domain

// ReconstructThread reduces a raw reply tree to the author's linear
// self-reply chain. The first element is always the normalized root post;
// each following element is a direct same-author continuation of the chain.
//
// A reply node is accepted only if all of the following hold:
//   - its author DID equals the root author's DID,
//   - its record's reply.root CID equals the root post's CID,
//   - its record's reply.parent CID equals the CID of the previously
//     accepted post (the root, initially).
//
// Acceptance is what drives descent: a rejected node's subtree is never
// visited, so a self-reply nested under someone else's comment stays
// excluded even though author and root would match. Siblings are each tried
// against the same expected parent; if the author genuinely branched, every
// qualifying branch is emitted in document order.
func ReconstructThread(cdnBase string, root *ThreadNode) []NormalizedPost {
	thread := []NormalizedPost{Normalize(cdnBase, root.Post)}
	return appendChain(thread, cdnBase, root.Replies, root.Post.CID, root.Post.CID, root.Post.Author.DID)
}

func appendChain(thread []NormalizedPost, cdnBase string, replies []ThreadNode, rootCID, parentCID, authorDID string) []NormalizedPost {
	for _, node := range replies {
		post := node.Post
		if post == nil || post.Record.Reply == nil {
			continue
		}
		if post.Author.DID != authorDID {
			continue
		}
		if post.Record.Reply.Root.CID != rootCID || post.Record.Reply.Parent.CID != parentCID {
			continue
		}
		thread = append(thread, Normalize(cdnBase, post))
		thread = appendChain(thread, cdnBase, node.Replies, rootCID, post.CID, authorDID)
	}
	return thread
}
