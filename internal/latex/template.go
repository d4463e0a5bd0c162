package latex

// DefaultTemplate is the starter resume used when a session is created
// without an initial document.
const DefaultTemplate = `\documentclass[11pt,a4paper]{article}
\usepackage[margin=0.75in]{geometry}
\usepackage{parskip}
\pagestyle{empty}

\begin{document}

\begin{center}
{\LARGE\textbf{Your Name}}\\[4pt]
email@example.com | +1-555-0100 | City, Country
\end{center}

\section*{Summary}
Write a brief professional summary here.

\section*{Experience}
\textbf{Job Title} \hfill \textit{Date Range}\\
\textit{Company Name}
\begin{itemize}
    \item Achievement or responsibility with metrics
    \item Another accomplishment
\end{itemize}

\section*{Education}
\textbf{Degree Name} \hfill \textit{Year}\\
\textit{University Name}

\section*{Skills}
Python, SQL, Data Analysis, Machine Learning

\end{document}
`
