package grid

// minNodes is the smallest axis: one cell spanned by two nodes.
const minNodes = 2
